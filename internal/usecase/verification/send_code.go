package verification

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/booking-api/internal/domain/verification"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

type SendCode struct {
	repo    domain.Repository
	sender  notify.EmailSender
	random  domain.RandomSource
	metrics *metrics.BookingMetrics

	// domainCheck, when set, rejects addresses whose domain does not
	// resolve.
	domainCheck func(email string) bool
}

func NewSendCode(
	repo domain.Repository,
	sender notify.EmailSender,
	random domain.RandomSource,
	metrics *metrics.BookingMetrics,
	domainCheck func(email string) bool,
) *SendCode {
	return &SendCode{
		repo:        repo,
		sender:      sender,
		random:      random,
		metrics:     metrics,
		domainCheck: domainCheck,
	}
}

// Execute stores a new code for email and mails it. Older codes are kept
// but only the newest one verifies.
func (uc *SendCode) Execute(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validators.IsEmail(email) {
		return httperr.Validation("invalid_email", "A valid email address is required.")
	}
	if uc.domainCheck != nil && !uc.domainCheck(email) {
		return httperr.Validation("invalid_email_domain", "The email domain does not accept mail.")
	}

	v := &models.EmailVerification{
		Email: email,
		Code:  domain.NewCode(uc.random),
	}
	if err := uc.repo.CreateVerification(ctx, v); err != nil {
		return err
	}
	uc.metrics.ObserveCode("issued")

	if err := uc.sender.Send(ctx, notify.VerificationCode(email, v.Code)); err != nil {
		return httperr.Dependency("notification_failed", "The verification code could not be sent.", err)
	}
	return nil
}
