package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/domain"
	"github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) GetEmployeeWithServices(
	ctx context.Context,
	employeeID uint,
) (*models.Employee, error) {
	return loadEmployee(r.db.WithContext(ctx), employeeID)
}

func (r *BookingGormRepository) HasBookingAfter(
	ctx context.Context,
	employeeID uint,
	email string,
	day time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BookingRequest{}).
		Where("employee_id = ? AND email = ? AND date > ?", employeeID, email, models.DateOf(day)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ListAvailableSegments(
	ctx context.Context,
	serviceIDs []uint,
	date time.Time,
) ([]models.AvailableHour, error) {

	if len(serviceIDs) == 0 {
		return nil, nil
	}

	var segments []models.AvailableHour
	if err := r.db.WithContext(ctx).
		Where("service_id IN ? AND date = ? AND is_available = ?", serviceIDs, models.DateOf(date), true).
		Order("start_time ASC, service_id ASC").
		Find(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

// CommitBooking claims the segments with a conditional update so two
// requests racing for the same run cannot both succeed.
func (r *BookingGormRepository) CommitBooking(
	ctx context.Context,
	b *models.BookingRequest,
	segmentIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(segmentIDs) > 0 {
			res := tx.Model(&models.AvailableHour{}).
				Where("id IN ? AND is_available = ?", segmentIDs, true).
				Update("is_available", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(segmentIDs)) {
				return domain.ErrSegmentTaken
			}
		}

		b.Date = models.DateOf(b.Date)
		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	employeeID uint,
) ([]models.BookingRequest, error) {

	var bookings []models.BookingRequest
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)
