package staff

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/staff"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/storage"
)

func employeeNotFound() error {
	return httperr.NotFoundErr("employee_not_found", "Employee not found.")
}

// --------------------------------------------------
// Get / List
// --------------------------------------------------

type GetEmployee struct {
	repo domain.Repository
}

func NewGetEmployee(repo domain.Repository) *GetEmployee {
	return &GetEmployee{repo: repo}
}

func (uc *GetEmployee) Execute(ctx context.Context, employeeID uint) (*models.Employee, error) {
	emp, err := uc.repo.GetEmployeeWithServices(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, employeeNotFound()
		}
		return nil, err
	}
	return emp, nil
}

type ListEmployees struct {
	repo domain.Repository
}

func NewListEmployees(repo domain.Repository) *ListEmployees {
	return &ListEmployees{repo: repo}
}

func (uc *ListEmployees) Execute(ctx context.Context) ([]models.Employee, error) {
	return uc.repo.ListEmployees(ctx)
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

type DeleteEmployee struct {
	repo   domain.Repository
	images storage.ImageStore
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewDeleteEmployee(
	repo domain.Repository,
	images storage.ImageStore,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *DeleteEmployee {
	return &DeleteEmployee{repo: repo, images: images, audit: audit, logger: logger}
}

// Execute removes the employee with its services, segments, bookings and
// picture. A picture that cannot be removed is only logged.
func (uc *DeleteEmployee) Execute(ctx context.Context, employeeID uint, actorID *uint) error {
	emp, err := uc.repo.GetEmployeeWithServices(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return employeeNotFound()
		}
		return err
	}

	if err := uc.repo.DeleteEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return employeeNotFound()
		}
		return err
	}

	if emp.ImageName != "" {
		if err := uc.images.Delete(ctx, emp.ImageName); err != nil {
			uc.logger.Warn().Err(err).Uint("employee_id", employeeID).Msg("failed to delete employee picture")
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "employee_deleted",
		Entity:   "employee",
		EntityID: &employeeID,
		Metadata: map[string]any{"email": emp.Email},
	})
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

type ServiceInput struct {
	Name              string
	DurationInMinutes int
}

type ReplaceServices struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceServices(repo domain.Repository, audit *audit.Dispatcher) *ReplaceServices {
	return &ReplaceServices{repo: repo, audit: audit}
}

// Execute swaps the employee's services for the given list. Existing
// services lose their segments and the employee's bookings are cleared.
func (uc *ReplaceServices) Execute(
	ctx context.Context,
	employeeID uint,
	in []ServiceInput,
	actorID *uint,
) ([]models.Service, error) {

	services := make([]models.Service, 0, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, httperr.Validation("service_name_required", "Every service needs a name.")
		}
		if s.DurationInMinutes <= 0 {
			return nil, httperr.Validation("invalid_duration", "Service duration must be a positive number of minutes.")
		}
		services = append(services, models.Service{Name: name, DurationInMinutes: s.DurationInMinutes})
	}

	if err := uc.repo.ReplaceServices(ctx, employeeID, services); err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, employeeNotFound()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EmployeeID: &employeeID,
		ActorID:    actorID,
		Action:     "services_replaced",
		Entity:     "employee",
		EntityID:   &employeeID,
		Metadata:   map[string]any{"services": len(services)},
	})

	return uc.repo.ListServices(ctx, employeeID)
}

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context, employeeID uint) ([]models.Service, error) {
	if _, err := uc.repo.GetEmployeeWithServices(ctx, employeeID); err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, employeeNotFound()
		}
		return nil, err
	}
	return uc.repo.ListServices(ctx, employeeID)
}
