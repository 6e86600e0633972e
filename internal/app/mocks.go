package app

import (
	"fmt"
	"sync/atomic"

	"designmatch_backend/internal/email"
	"designmatch_backend/internal/logger"
)

// MockEmailProvider logs outgoing mail instead of delivering it. Used
// in development when no real provider is configured.
type MockEmailProvider struct {
	counter atomic.Int64
}

func (m *MockEmailProvider) Send(msg *email.Email) (*email.SendResult, error) {
	id := fmt.Sprintf("mock-%d", m.counter.Add(1))
	logger.Info("[MOCK EMAIL] message discarded",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", id,
	)
	return &email.SendResult{MessageID: id}, nil
}

func (m *MockEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) (*email.SendResult, error) {
	id := fmt.Sprintf("mock-%d", m.counter.Add(1))
	logger.Info("[MOCK EMAIL] templated message discarded",
		"to", to,
		"subject", subject,
		"template", templateName,
		"message_id", id,
	)
	return &email.SendResult{MessageID: id}, nil
}

func (m *MockEmailProvider) Validate() error { return nil }

func (m *MockEmailProvider) Close() error { return nil }
