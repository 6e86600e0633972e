package email

// Provider defines the interface for sending email
type Provider interface {
	// Send sends a plain email message
	Send(email *Email) (*SendResult, error)

	// SendTemplate renders the named template with data and sends it
	SendTemplate(to []string, subject, templateName string, data TemplateData) (*SendResult, error)

	// Validate checks the provider configuration
	Validate() error

	// Close releases provider resources
	Close() error
}

// TemplateRenderer defines the interface for rendering email templates
type TemplateRenderer interface {
	// Render renders a template with data
	Render(templateName string, data TemplateData) (string, error)

	// RenderText renders the plain-text variant of a template
	RenderText(templateName string, data TemplateData) (string, error)

	// AddTemplate registers a template
	AddTemplate(name, htmlTemplate, textTemplate string) error
}
