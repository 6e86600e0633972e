package models

import "github.com/lib/pq"

// UserProfile holds the public-facing profile for both clients and
// designers. Designer-only fields (bio, skills, rate, portfolio) stay
// empty for clients until they switch type and fill them in.
type UserProfile struct {
	BaseModel
	UserID       string         `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	UserType     UserType       `gorm:"type:varchar(20);not null" json:"user_type"`
	FullName     string         `gorm:"not null" json:"full_name"`
	Email        string         `gorm:"not null" json:"email"`
	Bio          string         `json:"bio"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	HourlyRate   float64        `json:"hourly_rate"`
	PortfolioURL string         `json:"portfolio_url"`
	AvatarURL    string         `json:"avatar_url"`
}

// HasSkill reports exact skill membership (case sensitive, matching the
// fixed skill option list)
func (p *UserProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
