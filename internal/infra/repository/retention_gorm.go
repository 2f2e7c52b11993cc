package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/retention"
)

type RetentionGormRepository struct {
	db *gorm.DB
}

func NewRetentionGormRepository(db *gorm.DB) *RetentionGormRepository {
	return &RetentionGormRepository{db: db}
}

func (r *RetentionGormRepository) PurgeBookingsBefore(
	ctx context.Context,
	threshold time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("date < ?", models.DateOf(threshold)).
		Delete(&models.BookingRequest{})
	return res.RowsAffected, res.Error
}

func (r *RetentionGormRepository) PurgeSegmentsBefore(
	ctx context.Context,
	threshold time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("date < ?", models.DateOf(threshold)).
		Delete(&models.AvailableHour{})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ retention.Purger = (*RetentionGormRepository)(nil)
