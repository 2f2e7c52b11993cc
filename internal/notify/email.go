package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/BruksfildServices01/booking-api/internal/metrics"
)

// EmailSender delivers one message. Implementations are interchangeable.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
	HTML    string
	// ReplyTo is optional.
	ReplyTo string
}

// --------------------------------------------------
// SendGrid
// --------------------------------------------------

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    zerolog.Logger
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender returns nil when no API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger zerolog.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = "Booking"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("sendgrid send failed")
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}

	if response.StatusCode >= 400 {
		s.logger.Error().Int("status", response.StatusCode).Str("to", msg.To).Msg("sendgrid returned error status")
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("status", response.StatusCode).Msg("email sent via sendgrid")
	return nil
}

// --------------------------------------------------
// Stub
// --------------------------------------------------

// StubEmailSender logs instead of sending and remembers what it was given.
type StubEmailSender struct {
	logger zerolog.Logger
	mu     sync.Mutex
	sent   []EmailMessage
	// Err, when set, is returned from every Send.
	Err error
}

func NewStubEmailSender(logger zerolog.Logger) *StubEmailSender {
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, msg)
	s.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("stub email sender: would send email")
	return nil
}

func (s *StubEmailSender) Sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EmailMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

// --------------------------------------------------
// Metrics
// --------------------------------------------------

type meteredSender struct {
	next    EmailSender
	metrics *metrics.BookingMetrics
}

// WithMetrics counts every send by outcome.
func WithMetrics(next EmailSender, m *metrics.BookingMetrics) EmailSender {
	return &meteredSender{next: next, metrics: m}
}

func (s *meteredSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := s.next.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail("failed")
		return err
	}
	s.metrics.ObserveEmail("sent")
	return nil
}

var (
	_ EmailSender = (*SendGridSender)(nil)
	_ EmailSender = (*StubEmailSender)(nil)
)
