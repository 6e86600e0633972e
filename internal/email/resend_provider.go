package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendBaseURL = "https://api.resend.com"

// ResendProvider implements Provider against the Resend HTTP API
type ResendProvider struct {
	config   *Config
	renderer TemplateRenderer
	baseURL  string
	client   *http.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// NewResendProvider creates a new Resend provider
func NewResendProvider(config *Config, renderer TemplateRenderer) *ResendProvider {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ResendProvider{
		config:   config,
		renderer: renderer,
		baseURL:  resendBaseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

// SetBaseURL points the provider at a different API host. Test hook.
func (p *ResendProvider) SetBaseURL(url string) {
	p.baseURL = url
}

// Send posts the email to the Resend API and returns its message id.
// Non-2xx responses surface as errors carrying the provider's body.
func (p *ResendProvider) Send(email *Email) (*SendResult, error) {
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

	payload, err := json.Marshal(resendRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLBody,
		Text:    email.Body,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.config.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read resend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("resend API error (%d): %s", resp.StatusCode, string(body))
	}

	var result resendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse resend response: %w", err)
	}

	return &SendResult{MessageID: result.ID}, nil
}

// SendTemplate renders the named template and sends it
func (p *ResendProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) (*SendResult, error) {
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

// Validate checks the Resend configuration
func (p *ResendProvider) Validate() error {
	if p.config.ResendAPIKey == "" {
		return fmt.Errorf("resend api key is required")
	}
	return nil
}

// Close releases provider resources
func (p *ResendProvider) Close() error {
	return nil
}
