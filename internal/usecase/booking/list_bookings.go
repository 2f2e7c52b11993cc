package booking

import (
	"context"
	"errors"

	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(ctx context.Context, employeeID uint) ([]models.BookingRequest, error) {
	if _, err := uc.repo.GetEmployeeWithServices(ctx, employeeID); err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, httperr.NotFoundErr("employee_not_found", "Employee not found.")
		}
		return nil, err
	}
	return uc.repo.ListBookings(ctx, employeeID)
}
