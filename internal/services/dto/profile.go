package dto

import (
	"time"

	"designmatch_backend/internal/models"
)

// UpdateProfileRequest - partial profile update. Nil pointers leave
// the stored value untouched.
type UpdateProfileRequest struct {
	FullName     *string  `json:"full_name,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty" binding:"omitempty,min=0"`
	PortfolioURL *string  `json:"portfolio_url,omitempty" binding:"omitempty,url"`
	AvatarURL    *string  `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

// SwitchUserTypeRequest - switch between the client and designer roles
type SwitchUserTypeRequest struct {
	UserType models.UserType `json:"user_type" binding:"required,oneof=client designer"`
}

// ProfileDTO - public profile view
type ProfileDTO struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	UserType     models.UserType `json:"user_type"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Bio          string          `json:"bio"`
	Skills       []string        `json:"skills"`
	HourlyRate   float64         `json:"hourly_rate"`
	PortfolioURL string          `json:"portfolio_url"`
	AvatarURL    string          `json:"avatar_url"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewProfileDTO maps a profile model to its DTO
func NewProfileDTO(profile *models.UserProfile) ProfileDTO {
	skills := []string{}
	if profile.Skills != nil {
		skills = []string(profile.Skills)
	}
	return ProfileDTO{
		ID:           profile.ID,
		UserID:       profile.UserID,
		UserType:     profile.UserType,
		FullName:     profile.FullName,
		Email:        profile.Email,
		Bio:          profile.Bio,
		Skills:       skills,
		HourlyRate:   profile.HourlyRate,
		PortfolioURL: profile.PortfolioURL,
		AvatarURL:    profile.AvatarURL,
		CreatedAt:    profile.CreatedAt,
	}
}
