package models

import "time"

// Deliverable is a unit of design work submitted for client approval.
// It stays watermarked until it is individually approved or its project
// completes.
type Deliverable struct {
	BaseModel
	ProjectID          string     `gorm:"type:uuid;not null;index" json:"project_id"`
	DesignerID         string     `gorm:"type:uuid;not null;index" json:"designer_id"`
	Title              string     `gorm:"not null" json:"title"`
	Description        string     `json:"description"`
	FileName           string     `json:"file_name"`
	FileURL            string     `json:"file_url"`
	IsFinalDeliverable bool       `gorm:"default:false" json:"is_final_deliverable"`
	IsWatermarked      bool       `gorm:"default:true" json:"is_watermarked"`
	ClientApproved     bool       `gorm:"default:false" json:"client_approved"`
	ApprovedAt         *time.Time `json:"approved_at"`
	RevisionNotes      string     `json:"revision_notes"`
}
