package dto

import (
	"time"

	"designmatch_backend/internal/models"
)

// RegisterRequest - new account registration
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	UserType models.UserType `json:"user_type" binding:"required,oneof=client designer"`
	FullName string          `json:"full_name" binding:"required"`
}

// LoginRequest - login with credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - exchange a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - revoke a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailRequest - confirm email ownership
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// PasswordResetRequest - start the reset flow
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm - complete the reset flow
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePasswordRequest - change password while logged in
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// DeactivateRequest - account deactivation. Confirmation must be the
// literal string DEACTIVATE.
type DeactivateRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// AuthResponse - token pair plus the authenticated user
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// UserDTO - basic account information
type UserDTO struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	UserType   models.UserType   `json:"user_type"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"is_verified"`
	CreatedAt  time.Time         `json:"created_at"`
}

// AuthStatusResponse - current session details for debugging
type AuthStatusResponse struct {
	Authenticated bool            `json:"authenticated"`
	UserID        string          `json:"user_id,omitempty"`
	UserType      models.UserType `json:"user_type,omitempty"`
	Email         string          `json:"email,omitempty"`
	IsVerified    bool            `json:"is_verified,omitempty"`
}

// UserLookupRequest - admin lookup of an account by email
type UserLookupRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UserStatusResponse - admin view of an account's standing
type UserStatusResponse struct {
	Found      bool              `json:"found"`
	UserID     string            `json:"user_id,omitempty"`
	Email      string            `json:"email,omitempty"`
	UserType   models.UserType   `json:"user_type,omitempty"`
	Status     models.UserStatus `json:"status,omitempty"`
	IsVerified bool              `json:"is_verified,omitempty"`
	CreatedAt  *time.Time        `json:"created_at,omitempty"`
}

// NewUserDTO maps a user model to its DTO
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		UserType:   user.UserType,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
