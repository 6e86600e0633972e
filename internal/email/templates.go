package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

// Template names known to the manager. Unknown requested types resolve
// to TemplateGeneric rather than failing.
const (
	TemplateVerification = "verification"
	TemplateGeneric      = "notification"
)

// ResolveTemplate maps a requested email type onto a registered
// template, falling back to the generic notification template.
func ResolveTemplate(emailType string) string {
	switch emailType {
	case TemplateVerification:
		return TemplateVerification
	default:
		return TemplateGeneric
	}
}

// SubjectFor returns the subject line for an email type
func SubjectFor(emailType string) string {
	switch ResolveTemplate(emailType) {
	case TemplateVerification:
		return "Welcome to FTG designmatch - Verify Your Designer Account"
	default:
		return "FTG designmatch Notification"
	}
}

// TemplateManager renders the built-in designmatch email templates
type TemplateManager struct {
	html  map[string]*template.Template
	text  map[string]*texttemplate.Template
	mutex sync.RWMutex
}

// NewTemplateManager creates a manager preloaded with the built-in
// templates.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		html: make(map[string]*template.Template),
		text: make(map[string]*texttemplate.Template),
	}

	if err := tm.AddTemplate(TemplateVerification, verificationHTML, verificationText); err != nil {
		return nil, err
	}
	if err := tm.AddTemplate(TemplateGeneric, genericHTML, genericText); err != nil {
		return nil, err
	}
	return tm, nil
}

// Render renders the HTML variant of a template
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.html[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderText renders the plain-text variant of a template
func (tm *TemplateManager) RenderText(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.text[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate registers an HTML/text template pair
func (tm *TemplateManager) AddTemplate(name, htmlTemplate, textTemplate string) error {
	htpl, err := template.New(name).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse html template %s: %w", name, err)
	}
	ttpl, err := texttemplate.New(name).Parse(textTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse text template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.html[name] = htpl
	tm.text[name] = ttpl
	tm.mutex.Unlock()

	return nil
}

// Branded templates. Data keys: FullName, Email, VerifyURL, Message.

const verificationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Welcome to FTG designmatch</title>
  <style>
    body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; background-color: #0f172a; }
    .container { max-width: 600px; margin: 0 auto; background: linear-gradient(135deg, #1e293b, #334155); border-radius: 12px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #f59e0b, #d97706); padding: 40px 30px; text-align: center; }
    .logo { color: #0f172a; font-size: 24px; font-weight: bold; }
    .tagline { color: #0f172a; font-size: 12px; opacity: 0.8; }
    .content { padding: 40px 30px; color: #e2e8f0; }
    .welcome { font-size: 24px; font-weight: bold; margin-bottom: 20px; color: #f59e0b; }
    .button { display: inline-block; background: #f59e0b; color: #0f172a; padding: 14px 28px; text-decoration: none; border-radius: 8px; font-weight: 600; margin: 20px 0; }
    .footer { padding: 30px; text-align: center; color: #64748b; font-size: 14px; border-top: 1px solid #334155; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="logo">FTG designmatch</div>
      <div class="tagline">you dream, we design</div>
    </div>
    <div class="content">
      <div class="welcome">Welcome to designmatch, {{if .FullName}}{{.FullName}}{{else}}Designer{{end}}!</div>
      <p>Thank you for joining our creative community! You're now part of a platform that connects talented designers with clients who value quality work.</p>
      <ul>
        <li><strong>Keep 90%</strong> of your earnings (only 10% commission)</li>
        <li><strong>Secure payments</strong> with escrow protection</li>
        <li><strong>Quality clients</strong> with verified projects</li>
      </ul>
      <p><strong>Next Steps:</strong></p>
      <ul>
        <li>Complete your profile with portfolio samples</li>
        <li>Set your availability and rates</li>
        <li>Start receiving project invitations</li>
      </ul>
      <div style="text-align: center;">
        <a href="{{.VerifyURL}}" class="button">Complete Your Registration</a>
      </div>
      <p><small>If the button doesn't work, copy and paste this link into your browser:<br>{{.VerifyURL}}</small></p>
    </div>
    <div class="footer">
      <p>&copy; FTG designmatch. All rights reserved.</p>
      <p>This email was sent to {{.Email}}. If you didn't create an account, please ignore this email.</p>
    </div>
  </div>
</body>
</html>`

const verificationText = `Welcome to FTG designmatch, {{if .FullName}}{{.FullName}}{{else}}Designer{{end}}!

Thank you for joining our creative community! You're now part of a platform that connects talented designers with clients who value quality work.

What you get:
- Keep 90% of your earnings (only 10% commission)
- Secure payments with escrow protection
- Access to quality, verified clients

Next Steps:
1. Complete your profile with portfolio samples
2. Set your availability and rates
3. Start receiving project invitations

Complete your registration: {{.VerifyURL}}

(c) FTG designmatch. All rights reserved.
This email was sent to {{.Email}}. If you didn't create an account, please ignore this email.`

const genericHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>FTG designmatch</title>
  <style>
    body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; background-color: #0f172a; }
    .container { max-width: 600px; margin: 0 auto; background: linear-gradient(135deg, #1e293b, #334155); border-radius: 12px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #f59e0b, #d97706); padding: 40px 30px; text-align: center; }
    .logo { color: #0f172a; font-size: 24px; font-weight: bold; }
    .content { padding: 40px 30px; color: #e2e8f0; }
    .footer { padding: 30px; text-align: center; color: #64748b; font-size: 14px; border-top: 1px solid #334155; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="logo">FTG designmatch</div>
    </div>
    <div class="content">
      <p>Hi {{if .FullName}}{{.FullName}}{{else}}there{{end}},</p>
      <p>{{if .Message}}{{.Message}}{{else}}You have a new update on FTG designmatch.{{end}}</p>
    </div>
    <div class="footer">
      <p>&copy; FTG designmatch. All rights reserved.</p>
      <p>This email was sent to {{.Email}}.</p>
    </div>
  </div>
</body>
</html>`

const genericText = `Hi {{if .FullName}}{{.FullName}}{{else}}there{{end}},

{{if .Message}}{{.Message}}{{else}}You have a new update on FTG designmatch.{{end}}

(c) FTG designmatch. All rights reserved.
This email was sent to {{.Email}}.`
