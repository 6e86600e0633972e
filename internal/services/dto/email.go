package dto

// SendTestEmailRequest - admin-only delivery check
type SendTestEmailRequest struct {
	To       string `json:"to" binding:"required,email"`
	Template string `json:"template"`
}

// SendTestEmailResponse - provider acknowledgement
type SendTestEmailResponse struct {
	MessageID string `json:"message_id"`
	Provider  string `json:"provider"`
}
