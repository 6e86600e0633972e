package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("record not found")
	appErr := ErrNotFound(cause)

	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.ErrorIs(t, appErr, cause, "the wrapped cause stays reachable")

	var target *AppError
	assert.True(t, As(appErr, &target))
	assert.Equal(t, CodeNotFound, target.Code)
}

func TestAppErrorMessage(t *testing.T) {
	t.Parallel()

	plain := New(CodeForbidden, "auth", "No access", http.StatusForbidden)
	assert.Contains(t, plain.Error(), "No access")
	assert.Contains(t, plain.Error(), "auth")

	wrapped := Wrap(errors.New("boom"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
	assert.Contains(t, wrapped.Error(), "boom")
}

// The wrapped cause must never leak into client-facing JSON.
func TestAppErrorJSONHidesCause(t *testing.T) {
	t.Parallel()

	appErr := Wrap(errors.New("dsn=postgres://secret"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	data, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), "Internal server error")
}

func TestValidationErrorDetails(t *testing.T) {
	t.Parallel()

	appErr := ValidationError(map[string]string{"email": "email is invalid"})

	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	data, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "email is invalid")
}

func TestPredefinedErrorStatusCodes(t *testing.T) {
	t.Parallel()

	cases := map[*AppError]int{
		ErrWeakPassword:               http.StatusBadRequest,
		ErrEmailAlreadyExists:         http.StatusConflict,
		ErrInvalidCredentials:         http.StatusUnauthorized,
		ErrUserDeactivated:            http.StatusForbidden,
		ErrInsufficientPermissions:    http.StatusForbidden,
		ErrDeactivateConfirmation:     http.StatusBadRequest,
		ErrProjectAccessDenied:        http.StatusForbidden,
		ErrDesignerAlreadyAssigned:    http.StatusConflict,
		ErrInvalidPaymentAmount:       http.StatusBadRequest,
		ErrInvalidWebhookSignature:    http.StatusForbidden,
		ErrRevisionNotesRequired:      http.StatusBadRequest,
		ErrDeliverableAlreadyApproved: http.StatusConflict,
		ErrConversationAccessDenied:   http.StatusForbidden,
		ErrFileTooLarge:               http.StatusRequestEntityTooLarge,
		ErrInvalidFileType:            http.StatusUnsupportedMediaType,
	}
	for appErr, want := range cases {
		assert.Equal(t, want, appErr.HTTPCode, appErr.Message)
	}
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	appErr, ok := AsAppError(ErrInvalidToken)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidToken, appErr)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
