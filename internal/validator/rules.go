package validator

import (
	"log"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain validation tags into the
// validator instance. Registration failures are fatal: a missing rule
// would silently skip validation.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-type", validateUserType)
	mustRegister("is-payment-type", validatePaymentType)
	mustRegister("is-rate-range", validateRateRange)
	mustRegister("is-message-type", validateMessageType)
}

func validateUserType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	// Admins are seeded, never self-registered, so the tag only
	// accepts the two marketplace roles.
	switch models.UserType(value) {
	case models.UserTypeClient, models.UserTypeDesigner:
		return true
	default:
		return false
	}
}

func validatePaymentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentType(value) {
	case models.PaymentTypeDeposit, models.PaymentTypeFinalPayment:
		return true
	default:
		return false
	}
}

func validateRateRange(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, _, err := repositories.ParseRateRange(value)
	return err == nil
}

func validateMessageType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.MessageType(value) {
	case models.MessageTypeText, models.MessageTypeImage:
		return true
	default:
		return false
	}
}
