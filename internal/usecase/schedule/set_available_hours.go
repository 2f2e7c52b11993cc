package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SetAvailableHoursInput struct {
	EmployeeID uint
	ServiceID  uint
	Date       time.Time
	Hours      domain.WorkingHours

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type SetAvailableHours struct {
	repo    domain.Repository
	policy  domain.RegenerationPolicy
	audit   *audit.Dispatcher
	metrics *metrics.BookingMetrics
}

func NewSetAvailableHours(
	repo domain.Repository,
	policy domain.RegenerationPolicy,
	audit *audit.Dispatcher,
	metrics *metrics.BookingMetrics,
) *SetAvailableHours {
	return &SetAvailableHours{
		repo:    repo,
		policy:  policy,
		audit:   audit,
		metrics: metrics,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SetAvailableHours) Execute(
	ctx context.Context,
	in SetAvailableHoursInput,
) ([]models.AvailableHour, error) {

	if in.Date.IsZero() {
		return nil, httperr.Validation("invalid_date", "A date is required.")
	}
	if err := in.Hours.Validate(); err != nil {
		return nil, httperr.Validation("invalid_working_hours", "Working hours must satisfy start <= lunch start <= lunch end <= end.")
	}

	// --------------------------------------------------
	// Employee / service
	// --------------------------------------------------
	emp, err := uc.repo.GetEmployeeWithServices(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, httperr.NotFoundErr("employee_not_found", "Employee not found.")
		}
		return nil, err
	}

	if _, ok := findService(emp, in.ServiceID); !ok {
		return nil, httperr.NotFoundErr("service_not_found", "Service not found.")
	}

	// --------------------------------------------------
	// Regeneration
	// --------------------------------------------------
	fresh := domain.BuildSegments(in.ServiceID, in.Date, in.Hours)

	var existing []models.AvailableHour
	if uc.policy == domain.RegenerateMerge {
		existing, err = uc.repo.ListSegments(ctx, in.ServiceID, in.Date)
		if err != nil {
			return nil, err
		}
	}
	segments := uc.policy.Apply(existing, fresh)

	if err := uc.repo.ReplaceSegments(ctx, in.ServiceID, in.Date, segments); err != nil {
		return nil, err
	}

	uc.metrics.AddSegments(len(segments))

	uc.audit.Dispatch(audit.Event{
		EmployeeID: &in.EmployeeID,
		ActorID:    in.ActorID,
		Action:     "hours_generated",
		Entity:     "service",
		EntityID:   &in.ServiceID,
		Metadata: map[string]any{
			"date":     models.DateOf(in.Date).Format(models.DateLayout),
			"segments": len(segments),
			"policy":   string(uc.policy),
		},
	})

	return segments, nil
}

func findService(emp *models.Employee, serviceID uint) (models.Service, bool) {
	for _, svc := range emp.Services {
		if svc.ID == serviceID {
			return svc, true
		}
	}
	return models.Service{}, false
}
