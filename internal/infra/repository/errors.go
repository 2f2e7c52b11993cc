package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/domain"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

const pgUniqueViolation = "23505"

// translate maps driver and gorm errors onto the domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicate
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

// loadEmployee fetches an employee with its services ordered by id.
func loadEmployee(db *gorm.DB, employeeID uint) (*models.Employee, error) {
	var emp models.Employee
	err := db.
		Preload("Services", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		}).
		First(&emp, employeeID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}
