package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/domain/staff"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

// --------------------------------------------------
// Employees
// --------------------------------------------------

func (r *StaffGormRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Preload("Services", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		}).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *StaffGormRepository) GetEmployeeWithServices(
	ctx context.Context,
	employeeID uint,
) (*models.Employee, error) {
	return loadEmployee(r.db.WithContext(ctx), employeeID)
}

func (r *StaffGormRepository) FindEmployeeByEmail(
	ctx context.Context,
	email string,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&emp).Error; err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

func (r *StaffGormRepository) CreateEmployee(
	ctx context.Context,
	e *models.Employee,
) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

func (r *StaffGormRepository) DeleteEmployee(
	ctx context.Context,
	employeeID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := tx.Select("id").First(&emp, employeeID).Error; err != nil {
			return translate(err)
		}

		if err := deleteServicesOf(tx, employeeID); err != nil {
			return err
		}

		if err := tx.
			Where("employee_id = ?", employeeID).
			Delete(&models.BookingRequest{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Employee{}, employeeID).Error
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *StaffGormRepository) ReplaceServices(
	ctx context.Context,
	employeeID uint,
	services []models.Service,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := tx.Select("id").First(&emp, employeeID).Error; err != nil {
			return translate(err)
		}

		if err := deleteServicesOf(tx, employeeID); err != nil {
			return err
		}

		if err := tx.
			Where("employee_id = ?", employeeID).
			Delete(&models.BookingRequest{}).Error; err != nil {
			return err
		}

		if len(services) == 0 {
			return nil
		}

		for i := range services {
			services[i].ID = 0
			services[i].EmployeeID = employeeID
		}
		return tx.Create(&services).Error
	})
}

func (r *StaffGormRepository) ListServices(
	ctx context.Context,
	employeeID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func deleteServicesOf(tx *gorm.DB, employeeID uint) error {
	serviceIDs := tx.Model(&models.Service{}).
		Select("id").
		Where("employee_id = ?", employeeID)

	if err := tx.
		Where("service_id IN (?)", serviceIDs).
		Delete(&models.AvailableHour{}).Error; err != nil {
		return err
	}

	return tx.
		Where("employee_id = ?", employeeID).
		Delete(&models.Service{}).Error
}

// Compile-time check
var _ staff.Repository = (*StaffGormRepository)(nil)
