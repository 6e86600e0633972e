package models

// Message is a persisted project-conversation message. Image messages
// carry the watermark flag of their attachment; the overlay itself is
// rendered client-side.
type Message struct {
	BaseModel
	ProjectID     string      `gorm:"type:uuid;not null;index" json:"project_id"`
	SenderID      string      `gorm:"type:uuid;not null;index" json:"sender_id"`
	Content       string      `json:"content"`
	Type          MessageType `gorm:"type:varchar(10);default:'text'" json:"type"`
	ImageURL      string      `json:"image_url,omitempty"`
	IsWatermarked bool        `gorm:"default:false" json:"is_watermarked"`

	Sender *UserProfile `gorm:"foreignKey:SenderID;references:UserID" json:"sender,omitempty"`
}
