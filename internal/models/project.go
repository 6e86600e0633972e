package models

import (
	"time"

	"github.com/lib/pq"
)

type Project struct {
	BaseModel
	ClientID       string         `gorm:"type:uuid;not null;index" json:"client_id"`
	DesignerID     *string        `gorm:"type:uuid;index" json:"designer_id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	Budget         float64        `gorm:"not null" json:"budget"`
	Status         ProjectStatus  `gorm:"type:varchar(30);default:'open';index" json:"status"`
	SkillsRequired pq.StringArray `gorm:"type:text[]" json:"skills_required"`
	Deadline       *time.Time     `json:"deadline"`
	CompletedAt    *time.Time     `json:"completed_at"`

	// Relations
	Client       *UserProfile  `gorm:"foreignKey:ClientID;references:UserID" json:"client,omitempty"`
	Designer     *UserProfile  `gorm:"foreignKey:DesignerID;references:UserID" json:"designer,omitempty"`
	Deliverables []Deliverable `gorm:"foreignKey:ProjectID" json:"deliverables,omitempty"`
}

// IsParticipant reports whether the user is the project's client or its
// assigned designer
func (p *Project) IsParticipant(userID string) bool {
	if p.ClientID == userID {
		return true
	}
	return p.DesignerID != nil && *p.DesignerID == userID
}
