package verification

import (
	"context"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type Repository interface {
	CreateVerification(ctx context.Context, v *models.EmailVerification) error

	// LatestVerification returns the most recently issued record for email
	// (highest id) or domain.ErrNotFound.
	LatestVerification(ctx context.Context, email string) (*models.EmailVerification, error)

	DeleteVerification(ctx context.Context, id uint) error
}
