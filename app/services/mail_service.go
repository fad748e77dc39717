// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/utils"
	"gopkg.in/gomail.v2"
)

// EmailMessage represents a single outbound email
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// MailService sends transactional email through a configured provider
type MailService interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// NewMailService builds the provider selected by configuration and wraps it
// with test routing when EMAIL_TEST_RECIPIENT is set.
func NewMailService(cfg *config.EmailConfig) MailService {
	var provider MailService
	switch cfg.Provider {
	case "smtp":
		provider = NewSMTPMailService(cfg)
	case "mock":
		provider = NewMockMailService()
	default:
		provider = NewResendMailService(cfg)
	}
	if cfg.TestRecipient != "" {
		provider = NewTestRoutedMailService(provider, cfg.TestRecipient)
	}
	return provider
}

// ResendMailService sends email through the Resend HTTP API
type ResendMailService struct {
	config *config.EmailConfig
	client *http.Client
}

// resendRequest represents the request payload for the Resend /emails endpoint
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// resendError represents the error payload returned by Resend
type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// NewResendMailService creates a new Resend-backed mail service
func NewResendMailService(cfg *config.EmailConfig) MailService {
	return &ResendMailService{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.ResendTimeout,
		},
	}
}

// Send delivers a single email via the Resend API. A missing API key is
// reported as a send failure so callers can record the decision anyway.
func (s *ResendMailService) Send(ctx context.Context, msg EmailMessage) error {
	if s.config.ResendAPIKey == "" {
		return fmt.Errorf("missing RESEND_API_KEY")
	}

	requestBody, err := json.Marshal(resendRequest{
		From:    s.config.FromEmail,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	url := fmt.Sprintf("%s/emails", s.config.ResendBaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.ResendAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr resendError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("email delivery failed for %s: %s (%d)", utils.ObfuscateEmail(msg.To), apiErr.Message, resp.StatusCode)
	}
	return fmt.Errorf("email delivery failed for %s: status %d", utils.ObfuscateEmail(msg.To), resp.StatusCode)
}

// SMTPMailService sends email through a plain SMTP relay
type SMTPMailService struct {
	config *config.EmailConfig
}

// NewSMTPMailService creates a new SMTP-backed mail service
func NewSMTPMailService(cfg *config.EmailConfig) MailService {
	return &SMTPMailService{config: cfg}
}

func (s *SMTPMailService) Send(ctx context.Context, msg EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	d.SSL = s.config.UseTLS

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp delivery failed for %s: %w", utils.ObfuscateEmail(msg.To), err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TestRoutedMailService redirects every outbound email to a single inbox and
// records the intended recipient in the subject line. Used in staging so real
// customers never receive test traffic.
type TestRoutedMailService struct {
	inner     MailService
	recipient string
}

// NewTestRoutedMailService wraps a provider with test routing
func NewTestRoutedMailService(inner MailService, recipient string) MailService {
	return &TestRoutedMailService{inner: inner, recipient: recipient}
}

func (s *TestRoutedMailService) Send(ctx context.Context, msg EmailMessage) error {
	routed := EmailMessage{
		To:      s.recipient,
		Subject: fmt.Sprintf("[TEST to=%s] %s", msg.To, msg.Subject),
		HTML:    msg.HTML,
	}
	return s.inner.Send(ctx, routed)
}

// MockMailService implements MailService for testing
type MockMailService struct {
	mu           sync.Mutex
	SentMessages []MockMailMessage

	// FailWith, when set, makes every Send return this error
	FailWith error
}

// MockMailMessage represents a recorded mock email
type MockMailMessage struct {
	To      string
	Subject string
	HTML    string
	SentAt  time.Time
}

// NewMockMailService creates a new mock mail service
func NewMockMailService() *MockMailService {
	return &MockMailService{
		SentMessages: make([]MockMailMessage, 0),
	}
}

func (m *MockMailService) Send(ctx context.Context, msg EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.SentMessages = append(m.SentMessages, MockMailMessage{
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		SentAt:  utils.UTCNow(),
	})
	return nil
}

// GetSentMessages returns all recorded mock messages
func (m *MockMailService) GetSentMessages() []MockMailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMailMessage, len(m.SentMessages))
	copy(out, m.SentMessages)
	return out
}

// ClearSentMessages clears the recorded messages
func (m *MockMailService) ClearSentMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = m.SentMessages[:0]
}
