package schedule

import (
	"context"
	"errors"
	"time"

	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type ListAvailableHoursInput struct {
	EmployeeID uint
	// Date is optional; nil lists every date.
	Date *time.Time
}

type ListAvailableHours struct {
	repo domain.Repository
}

func NewListAvailableHours(repo domain.Repository) *ListAvailableHours {
	return &ListAvailableHours{repo: repo}
}

func (uc *ListAvailableHours) Execute(
	ctx context.Context,
	in ListAvailableHoursInput,
) ([]models.AvailableHour, error) {

	if _, err := uc.repo.GetEmployeeWithServices(ctx, in.EmployeeID); err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, httperr.NotFoundErr("employee_not_found", "Employee not found.")
		}
		return nil, err
	}

	return uc.repo.ListEmployeeSegments(ctx, in.EmployeeID, in.Date)
}
