package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/clock"
	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	EmployeeID uint
	ServiceID  uint
	Date       time.Time
	StartTime  models.TimeOfDay

	Name  string
	Email string
	Phone string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	locker  domain.Locker
	sender  notify.EmailSender
	clock   clock.Clock
	scope   domain.Scope
	audit   *audit.Dispatcher
	metrics *metrics.BookingMetrics
	logger  zerolog.Logger
}

type BookAppointmentDeps struct {
	Repo    domain.Repository
	Locker  domain.Locker
	Sender  notify.EmailSender
	Clock   clock.Clock
	Scope   domain.Scope
	Audit   *audit.Dispatcher
	Metrics *metrics.BookingMetrics
	Logger  zerolog.Logger
}

func NewBookAppointment(deps BookAppointmentDeps) *BookAppointment {
	if deps.Scope == "" {
		deps.Scope = domain.ScopeEmployee
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	return &BookAppointment{
		repo:    deps.Repo,
		locker:  deps.Locker,
		sender:  deps.Sender,
		clock:   deps.Clock,
		scope:   deps.Scope,
		audit:   deps.Audit,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute commits the booking and then sends the confirmation. When only
// the email fails, the committed booking is returned together with a
// notification_failed error.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.BookingRequest, error) {

	started := time.Now()
	b, err := uc.commit(ctx, in)
	if err != nil {
		uc.metrics.ObserveBooking(outcome(err), time.Since(started).Seconds())
		return nil, err
	}
	uc.metrics.ObserveBooking("created", time.Since(started).Seconds())

	emp, svc := b.employee, b.service
	booking := b.booking

	uc.audit.Dispatch(audit.Event{
		EmployeeID: &booking.EmployeeID,
		Action:     "booking_created",
		Entity:     "booking_request",
		EntityID:   &booking.ID,
		Metadata: map[string]any{
			"service_id": booking.ServiceID,
			"date":       booking.Date.Format(models.DateLayout),
			"start_time": booking.StartTime.String(),
			"end_time":   b.match.End.String(),
			"segments":   len(b.match.Segments),
		},
	})

	// --------------------------------------------------
	// Confirmation (after commit, never rolled back)
	// --------------------------------------------------
	if err := uc.sender.Send(ctx, notify.BookingConfirmation(*booking, emp.Name, svc.Name)); err != nil {
		uc.logger.Warn().Err(err).Uint("booking_id", booking.ID).Msg("booking confirmation email failed")
		return booking, httperr.Dependency(
			"notification_failed",
			"The appointment was booked but the confirmation email could not be sent.",
			err,
		)
	}

	return booking, nil
}

type committed struct {
	booking  *models.BookingRequest
	employee *models.Employee
	service  models.Service
	match    domain.Match
}

func (uc *BookAppointment) commit(
	ctx context.Context,
	in BookAppointmentInput,
) (*committed, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return nil, httperr.Validation("name_required", "Name is required.")
	}
	if !validators.IsEmail(in.Email) {
		return nil, httperr.Validation("invalid_email", "A valid email address is required.")
	}
	if in.Phone == "" {
		return nil, httperr.Validation("phone_required", "Phone number is required.")
	}
	if in.Date.IsZero() {
		return nil, httperr.Validation("invalid_date", "A date is required.")
	}

	// --------------------------------------------------
	// 2. Employee
	// --------------------------------------------------
	emp, err := uc.repo.GetEmployeeWithServices(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, httperr.NotFoundErr("employee_not_found", "Employee not found.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. One upcoming booking per customer and employee
	// --------------------------------------------------
	active, err := uc.repo.HasBookingAfter(ctx, emp.ID, in.Email, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	if active {
		return nil, httperr.Conflict(
			"booking_already_exists",
			"You already have an upcoming appointment with this employee.",
		)
	}

	// --------------------------------------------------
	// 4. Service
	// --------------------------------------------------
	var svc models.Service
	found := false
	for _, s := range emp.Services {
		if s.ID == in.ServiceID {
			svc, found = s, true
			break
		}
	}
	if !found {
		return nil, httperr.NotFoundErr("service_not_found", "Service not found for this employee.")
	}

	// --------------------------------------------------
	// 5. Critical section per employee and day
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, domain.LockKey(emp.ID, in.Date))
	if err != nil {
		if errors.Is(err, domain.ErrLockBusy) {
			return nil, httperr.Conflict("booking_in_progress", "Another booking for this day is in progress, please retry.")
		}
		return nil, err
	}
	defer release()

	serviceIDs := []uint{svc.ID}
	if uc.scope == domain.ScopeEmployee {
		serviceIDs = serviceIDs[:0]
		for _, s := range emp.Services {
			serviceIDs = append(serviceIDs, s.ID)
		}
	}

	pool, err := uc.repo.ListAvailableSegments(ctx, serviceIDs, in.Date)
	if err != nil {
		return nil, err
	}

	match, err := domain.FindRun(pool, domain.MatchRequest{
		ServiceID:       svc.ID,
		Start:           in.StartTime,
		DurationMinutes: svc.DurationInMinutes,
		Scope:           uc.scope,
	})
	switch {
	case errors.Is(err, domain.ErrSlotNotAvailable):
		return nil, slotNotAvailable()
	case errors.Is(err, domain.ErrDurationExceeds):
		return nil, httperr.Conflict(
			"duration_exceeds_available_time",
			"The service duration is longer than the time available from the selected slot.",
		)
	case err != nil:
		return nil, err
	}

	// --------------------------------------------------
	// 6. Commit
	// --------------------------------------------------
	b := &models.BookingRequest{
		EmployeeID: emp.ID,
		ServiceID:  svc.ID,
		Date:       models.DateOf(in.Date),
		StartTime:  in.StartTime,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
	}

	if err := uc.repo.CommitBooking(ctx, b, match.SegmentIDs()); err != nil {
		if errors.Is(err, domainerr.ErrSegmentTaken) {
			return nil, slotNotAvailable()
		}
		return nil, err
	}

	return &committed{booking: b, employee: emp, service: svc, match: match}, nil
}

func slotNotAvailable() error {
	return httperr.Conflict("slot_not_available", "The selected time slot is not available.")
}

func outcome(err error) string {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return "error"
}
