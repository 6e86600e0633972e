package dto

import (
	"time"

	"designmatch_backend/internal/models"
)

// SendMessageRequest - post a text message to a project conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ListMessagesRequest - pagination for conversation history
type ListMessagesRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// MessageDTO - conversation message view
type MessageDTO struct {
	ID            string             `json:"id"`
	ProjectID     string             `json:"project_id"`
	SenderID      string             `json:"sender_id"`
	SenderName    string             `json:"sender_name,omitempty"`
	Content       string             `json:"content"`
	Type          models.MessageType `json:"type"`
	ImageURL      string             `json:"image_url,omitempty"`
	IsWatermarked bool               `json:"is_watermarked"`
	CreatedAt     time.Time          `json:"created_at"`
}

// MessageListResponse - paginated conversation history, oldest first
type MessageListResponse struct {
	Messages []MessageDTO `json:"messages"`
	Total    int64        `json:"total"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
}

// NewMessageDTO maps a message model to its DTO
func NewMessageDTO(m *models.Message) MessageDTO {
	d := MessageDTO{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		SenderID:      m.SenderID,
		Content:       m.Content,
		Type:          m.Type,
		ImageURL:      m.ImageURL,
		IsWatermarked: m.IsWatermarked,
		CreatedAt:     m.CreatedAt,
	}
	if m.Sender != nil {
		d.SenderName = m.Sender.FullName
	}
	return d
}
