package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/domain/verification"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type VerificationGormRepository struct {
	db *gorm.DB
}

func NewVerificationGormRepository(db *gorm.DB) *VerificationGormRepository {
	return &VerificationGormRepository{db: db}
}

func (r *VerificationGormRepository) CreateVerification(
	ctx context.Context,
	v *models.EmailVerification,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VerificationGormRepository) LatestVerification(
	ctx context.Context,
	email string,
) (*models.EmailVerification, error) {

	var v models.EmailVerification
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id DESC").
		First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *VerificationGormRepository) DeleteVerification(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.EmailVerification{}, id).Error
}

// Compile-time check
var _ verification.Repository = (*VerificationGormRepository)(nil)
