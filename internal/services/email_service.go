package services

import (
	"context"
	"fmt"

	"designmatch_backend/internal/config"
	"designmatch_backend/internal/email"
	"designmatch_backend/internal/logger"
	"designmatch_backend/pkg/apperrors"
)

// EmailService is the high-level sending facade over the configured
// provider.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, to, fullName, token string) error
	SendPasswordResetEmail(ctx context.Context, to, fullName, token string) error
	SendNotificationEmail(ctx context.Context, to, fullName, subject, message string) error
	SendTestEmail(ctx context.Context, to, templateName string) (string, error)
	ProviderName() string
}

type EmailServiceImpl struct {
	provider     email.Provider
	providerName string
	frontendURL  string
}

func NewEmailService(provider email.Provider, providerName string) EmailService {
	return &EmailServiceImpl{
		provider:     provider,
		providerName: providerName,
		frontendURL:  config.GetConfig().Server.FrontendURL,
	}
}

func (s *EmailServiceImpl) SendVerificationEmail(ctx context.Context, to, fullName, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)

	data := email.TemplateData{
		"FullName":  fullName,
		"Email":     to,
		"VerifyURL": verifyURL,
	}

	result, err := s.provider.SendTemplate(
		[]string{to},
		email.SubjectFor(email.TemplateVerification),
		email.TemplateVerification,
		data,
	)
	if err != nil {
		return apperrors.ErrEmailProviderError
	}

	logger.CtxInfo(ctx, "Verification email sent", "to", to, "message_id", result.MessageID)
	return nil
}

func (s *EmailServiceImpl) SendPasswordResetEmail(ctx context.Context, to, fullName, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	data := email.TemplateData{
		"FullName": fullName,
		"Email":    to,
		"Message":  "We received a request to reset your password. The link below is valid for one hour: " + resetURL,
	}

	result, err := s.provider.SendTemplate(
		[]string{to},
		"Reset your designmatch password",
		email.TemplateGeneric,
		data,
	)
	if err != nil {
		return apperrors.ErrEmailProviderError
	}

	logger.CtxInfo(ctx, "Password reset email sent", "to", to, "message_id", result.MessageID)
	return nil
}

func (s *EmailServiceImpl) SendNotificationEmail(ctx context.Context, to, fullName, subject, message string) error {
	data := email.TemplateData{
		"FullName": fullName,
		"Email":    to,
		"Message":  message,
	}

	_, err := s.provider.SendTemplate([]string{to}, subject, email.TemplateGeneric, data)
	if err != nil {
		return apperrors.ErrEmailProviderError
	}
	return nil
}

// SendTestEmail lets an admin verify delivery. Unknown template names
// fall back to the generic layout rather than failing.
func (s *EmailServiceImpl) SendTestEmail(ctx context.Context, to, templateName string) (string, error) {
	resolved := email.ResolveTemplate(templateName)

	data := email.TemplateData{
		"FullName":  "Test recipient",
		"Email":     to,
		"VerifyURL": s.frontendURL,
		"Message":   "This is a test message confirming outgoing email is configured correctly.",
	}

	result, err := s.provider.SendTemplate([]string{to}, email.SubjectFor(resolved), resolved, data)
	if err != nil {
		return "", apperrors.ErrEmailProviderError
	}

	logger.CtxInfo(ctx, "Test email sent", "to", to, "template", resolved, "message_id", result.MessageID)
	return result.MessageID, nil
}

func (s *EmailServiceImpl) ProviderName() string {
	return s.providerName
}
