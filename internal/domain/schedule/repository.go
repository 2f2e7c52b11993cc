package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type Repository interface {
	// -------- Employee / Service --------
	GetEmployeeWithServices(
		ctx context.Context,
		employeeID uint,
	) (*models.Employee, error)

	// -------- Segments --------
	ListSegments(
		ctx context.Context,
		serviceID uint,
		date time.Time,
	) ([]models.AvailableHour, error)

	// ReplaceSegments deletes every segment of (serviceID, date) and inserts
	// segments in a single transaction.
	ReplaceSegments(
		ctx context.Context,
		serviceID uint,
		date time.Time,
		segments []models.AvailableHour,
	) error

	// ListEmployeeSegments returns segments of every service the employee
	// owns, optionally restricted to one date.
	ListEmployeeSegments(
		ctx context.Context,
		employeeID uint,
		date *time.Time,
	) ([]models.AvailableHour, error)

	DeleteSegment(
		ctx context.Context,
		segmentID uint,
	) (*models.AvailableHour, error)
}
