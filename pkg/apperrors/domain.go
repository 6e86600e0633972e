package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for common business-logic and
domain errors.
*/

// =========================================================================
// Factory functions (used to wrap repository errors)
// =========================================================================

// ErrNotFound converts a repository "record not found" into a 404 AppError
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a repository duplicate into a 409 AppError
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Factory functions (for new errors)
// =========================================================================

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Predefined variables (frequent, static errors)
// =========================================================================

// --- Auth & user status ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserDeactivated = New(
	CodeForbidden,
	"auth",
	"This account has been deactivated",
	http.StatusForbidden,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

var ErrInvalidUserType = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user type for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrDeactivateConfirmation - the literal confirmation text did not match.
// Account deactivation requires the user to type DEACTIVATE.
var ErrDeactivateConfirmation = New(
	CodeValidationFailed,
	"validation",
	"Please type 'DEACTIVATE' to confirm",
	http.StatusBadRequest,
)

// --- Projects ---

var ErrInvalidProjectStatus = New(
	CodeInvalidStatus,
	"project",
	"Operation not allowed for the current project status",
	http.StatusConflict,
)

var ErrProjectAccessDenied = New(
	CodeForbidden,
	"project",
	"Access to project denied",
	http.StatusForbidden,
)

var ErrDesignerAlreadyAssigned = New(
	CodeConflict,
	"project",
	"A designer is already assigned to this project",
	http.StatusConflict,
)

// --- Payments ---

var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Payment amount must be a positive number",
	http.StatusBadRequest,
)

// ErrPaymentProviderError - generic processor failure. Detail is logged
// server-side and never returned to the client.
var ErrPaymentProviderError = New(
	CodeExternalServiceError,
	"payment",
	"Payment processing failed",
	http.StatusInternalServerError,
)

var ErrInvalidWebhookSignature = New(
	CodeForbidden,
	"payment",
	"Invalid webhook signature",
	http.StatusForbidden,
)

// --- Deliverables ---

var ErrRevisionNotesRequired = New(
	CodeValidationFailed,
	"deliverable",
	"Revision notes are required when requesting a revision",
	http.StatusBadRequest,
)

var ErrDeliverableAlreadyApproved = New(
	CodeInvalidOperation,
	"deliverable",
	"Deliverable has already been approved",
	http.StatusConflict,
)

// --- Messaging ---

var ErrConversationAccessDenied = New(
	CodeForbidden,
	"message",
	"Access to this conversation denied",
	http.StatusForbidden,
)

var ErrInvalidMessageType = New(
	CodeValidationFailed,
	"validation",
	"Invalid message type",
	http.StatusBadRequest,
)

// --- Uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Email ---

var ErrEmailProviderError = New(
	CodeExternalServiceError,
	"email",
	"Email delivery failed",
	http.StatusInternalServerError,
)
