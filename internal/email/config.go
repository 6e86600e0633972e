package email

import (
	"fmt"
	"time"
)

// Config holds delivery configuration shared by the providers
type Config struct {
	// SMTP
	SMTPHost string
	SMTPPort int
	Username string
	Password string

	// Resend
	ResendAPIKey string
	ResendDomain string

	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// DefaultConfig returns the default delivery configuration
func DefaultConfig() *Config {
	return &Config{
		SMTPHost: "localhost",
		SMTPPort: 587,
		Timeout:  30 * time.Second,
	}
}

// FromAddress builds the RFC 5322 sender. When a sending domain is
// configured the branded noreply address is used, otherwise the Resend
// onboarding fallback.
func (c *Config) FromAddress() string {
	name := c.FromName
	if name == "" {
		name = "FTG designmatch"
	}
	if c.FromEmail != "" {
		return fmt.Sprintf("%s <%s>", name, c.FromEmail)
	}
	if c.ResendDomain != "" {
		return fmt.Sprintf("%s <noreply@%s>", name, c.ResendDomain)
	}
	return fmt.Sprintf("%s <onboarding@resend.dev>", name)
}
