package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type Repository interface {
	GetEmployeeWithServices(
		ctx context.Context,
		employeeID uint,
	) (*models.Employee, error)

	// HasBookingAfter reports whether email holds a booking with the
	// employee dated strictly after day.
	HasBookingAfter(
		ctx context.Context,
		employeeID uint,
		email string,
		day time.Time,
	) (bool, error)

	ListAvailableSegments(
		ctx context.Context,
		serviceIDs []uint,
		date time.Time,
	) ([]models.AvailableHour, error)

	// CommitBooking flips every segment in segmentIDs from available to
	// unavailable and inserts b, atomically. If any segment was already
	// unavailable nothing is written and domain.ErrSegmentTaken is returned.
	CommitBooking(
		ctx context.Context,
		b *models.BookingRequest,
		segmentIDs []uint,
	) error

	ListBookings(
		ctx context.Context,
		employeeID uint,
	) ([]models.BookingRequest, error)
}
