package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleStruct struct {
	Email       string  `json:"email" validate:"required,email"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	UserType    string  `json:"user_type" validate:"omitempty,is-user-type"`
	PaymentType string  `json:"payment_type" validate:"omitempty,is-payment-type"`
	RateRange   string  `json:"rate_range" validate:"omitempty,is-rate-range"`
	MessageType string  `json:"message_type" validate:"omitempty,is-message-type"`
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&sampleStruct{
		Email:       "sam@example.com",
		Amount:      10,
		UserType:    "designer",
		PaymentType: "deposit",
		RateRange:   "25-50",
		MessageType: "text",
	}))

	// Optional custom-rule fields may be empty.
	assert.NoError(t, v.Validate(&sampleStruct{Email: "sam@example.com", Amount: 1}))
}

func TestValidate_FieldNamesFromJSONTags(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&sampleStruct{Email: "not-an-email", Amount: -1})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Reported names come from the json tags, not the Go field names.
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "amount")
	assert.NotContains(t, verr.Errors, "Email")
	assert.Equal(t, "Must be a valid email address", verr.Errors["email"])
}

func TestValidate_CustomRules(t *testing.T) {
	t.Parallel()
	v := New()

	base := sampleStruct{Email: "sam@example.com", Amount: 1}

	t.Run("user type", func(t *testing.T) {
		s := base
		s.UserType = "admin" // admins are seeded, never self-selected
		err := v.Validate(&s)
		require.Error(t, err)
		verr := err.(*ValidationError)
		assert.Contains(t, verr.Errors["user_type"], "client or designer")

		s.UserType = "client"
		assert.NoError(t, v.Validate(&s))
	})

	t.Run("payment type", func(t *testing.T) {
		s := base
		s.PaymentType = "refund"
		require.Error(t, v.Validate(&s))

		s.PaymentType = "final_payment"
		assert.NoError(t, v.Validate(&s))
	})

	t.Run("rate range", func(t *testing.T) {
		s := base
		s.RateRange = "0-50"
		require.Error(t, v.Validate(&s))

		for _, rateRange := range []string{"0-25", "25-50", "50-100", "100+"} {
			s.RateRange = rateRange
			assert.NoError(t, v.Validate(&s), rateRange)
		}
	})

	t.Run("message type", func(t *testing.T) {
		s := base
		s.MessageType = "video"
		require.Error(t, v.Validate(&s))

		s.MessageType = "image"
		assert.NoError(t, v.Validate(&s))
	})
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Errors: map[string]string{"email": "This field is required"}}
	assert.Contains(t, err.Error(), "Validation failed")
	assert.Contains(t, err.Error(), "email")
}
