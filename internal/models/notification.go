package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index" json:"user_id"`
	Type    string `gorm:"not null" json:"type"` // "project_update", "new_message", "payment_received", "deliverable_review"
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data"` // {"project_id": "...", "payment_id": "..."}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at"`
}
