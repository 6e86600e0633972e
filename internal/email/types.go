package email

// Email represents one outgoing message
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData represents data passed to email templates
type TemplateData map[string]interface{}

// SendResult carries the provider's message identifier
type SendResult struct {
	MessageID string
}
