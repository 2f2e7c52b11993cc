package verification

import (
	"context"
	"errors"
	"strings"

	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/verification"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
)

type VerifyCodeInput struct {
	Email string
	Code  string
}

type VerifyCode struct {
	repo    domain.Repository
	metrics *metrics.BookingMetrics
}

func NewVerifyCode(repo domain.Repository, metrics *metrics.BookingMetrics) *VerifyCode {
	return &VerifyCode{repo: repo, metrics: metrics}
}

// Execute accepts only the newest code issued for the email and consumes it.
func (uc *VerifyCode) Execute(ctx context.Context, in VerifyCodeInput) error {
	email := strings.TrimSpace(in.Email)
	code := strings.TrimSpace(in.Code)

	v, err := uc.repo.LatestVerification(ctx, email)
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			uc.metrics.ObserveCode("rejected")
			return invalidCode()
		}
		return err
	}

	if v.Code != code {
		uc.metrics.ObserveCode("rejected")
		return invalidCode()
	}

	if err := uc.repo.DeleteVerification(ctx, v.ID); err != nil {
		return err
	}
	uc.metrics.ObserveCode("verified")
	return nil
}

func invalidCode() error {
	return httperr.Conflict("invalid_verification_code", "Invalid verification code.")
}
