package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP via gomail
type SMTPProvider struct {
	config   *Config
	renderer TemplateRenderer
	dialer   *gomail.Dialer
}

// NewSMTPProvider creates a new SMTP provider
func NewSMTPProvider(config *Config, renderer TemplateRenderer) *SMTPProvider {
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password)
	return &SMTPProvider{
		config:   config,
		renderer: renderer,
		dialer:   dialer,
	}
}

// Send sends an email message
func (p *SMTPProvider) Send(email *Email) (*SendResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(email.To) == 0 {
		return nil, fmt.Errorf("no recipients specified")
	}

	from := email.From
	if from == "" {
		from = p.config.FromAddress()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("smtp send failed: %w", err)
	}

	// SMTP has no provider-side message id; callers get an empty one
	return &SendResult{}, nil
}

// SendTemplate renders the named template and sends it
func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) (*SendResult, error) {
	if p.renderer == nil {
		return nil, fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	textBody, err := p.renderer.RenderText(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		Body:     textBody,
		HTMLBody: htmlBody,
	})
}

// Validate checks the SMTP configuration
func (p *SMTPProvider) Validate() error {
	if p.config.SMTPHost == "" {
		return fmt.Errorf("smtp host is required")
	}
	if p.config.SMTPPort == 0 {
		return fmt.Errorf("smtp port is required")
	}
	return nil
}

// Close releases provider resources
func (p *SMTPProvider) Close() error {
	return nil
}
