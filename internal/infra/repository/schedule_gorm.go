package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Employee
// --------------------------------------------------

func (r *ScheduleGormRepository) GetEmployeeWithServices(
	ctx context.Context,
	employeeID uint,
) (*models.Employee, error) {
	return loadEmployee(r.db.WithContext(ctx), employeeID)
}

// --------------------------------------------------
// Segments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListSegments(
	ctx context.Context,
	serviceID uint,
	date time.Time,
) ([]models.AvailableHour, error) {

	var segments []models.AvailableHour
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND date = ?", serviceID, models.DateOf(date)).
		Order("start_time ASC").
		Find(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

func (r *ScheduleGormRepository) ReplaceSegments(
	ctx context.Context,
	serviceID uint,
	date time.Time,
	segments []models.AvailableHour,
) error {

	day := models.DateOf(date)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_id = ? AND date = ?", serviceID, day).
			Delete(&models.AvailableHour{}).Error; err != nil {
			return err
		}

		if len(segments) == 0 {
			return nil
		}

		for i := range segments {
			segments[i].ID = 0
			segments[i].ServiceID = serviceID
			segments[i].Date = day
		}

		return translate(tx.Create(&segments).Error)
	})
}

func (r *ScheduleGormRepository) ListEmployeeSegments(
	ctx context.Context,
	employeeID uint,
	date *time.Time,
) ([]models.AvailableHour, error) {

	q := r.db.WithContext(ctx).
		Joins("JOIN services ON services.id = available_hours.service_id").
		Where("services.employee_id = ?", employeeID)

	if date != nil {
		q = q.Where("available_hours.date = ?", models.DateOf(*date))
	}

	var segments []models.AvailableHour
	if err := q.
		Order("available_hours.date ASC, available_hours.start_time ASC, available_hours.service_id ASC").
		Find(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

func (r *ScheduleGormRepository) DeleteSegment(
	ctx context.Context,
	segmentID uint,
) (*models.AvailableHour, error) {

	var seg models.AvailableHour
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&seg, segmentID).Error; err != nil {
			return translate(err)
		}
		return tx.Delete(&models.AvailableHour{}, segmentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
