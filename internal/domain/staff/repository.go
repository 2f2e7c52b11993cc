package staff

import (
	"context"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type Repository interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)

	GetEmployeeWithServices(ctx context.Context, employeeID uint) (*models.Employee, error)

	FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)

	// CreateEmployee returns domain.ErrDuplicate when the email is taken.
	CreateEmployee(ctx context.Context, e *models.Employee) error

	// DeleteEmployee removes the employee with its services, their
	// segments and the employee's bookings.
	DeleteEmployee(ctx context.Context, employeeID uint) error

	// ReplaceServices drops the employee's services (and their segments),
	// clears the employee's bookings and stores services in their place.
	ReplaceServices(ctx context.Context, employeeID uint, services []models.Service) error

	ListServices(ctx context.Context, employeeID uint) ([]models.Service, error)
}
