package staff

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/booking-api/internal/auth"
	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/staff"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// ======================================================
// LOGIN
// ======================================================

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token    string
	Employee *models.Employee
}

type Login struct {
	repo   domain.Repository
	tokens *auth.TokenIssuer
}

func NewLogin(repo domain.Repository, tokens *auth.TokenIssuer) *Login {
	return &Login{repo: repo, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	emp, err := uc.repo.FindEmployeeByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !domain.CheckPassword(emp.PasswordHash, in.Password) {
		return nil, invalidCredentials()
	}

	token, err := uc.tokens.Issue(auth.Identity{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		IsAdmin:    emp.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Token: token, Employee: emp}, nil
}

func invalidCredentials() error {
	return httperr.Unauthenticated("invalid_credentials", "Invalid email or password.")
}

// ======================================================
// ADMIN SEED
// ======================================================

type EnsureAdmin struct {
	repo domain.Repository
}

func NewEnsureAdmin(repo domain.Repository) *EnsureAdmin {
	return &EnsureAdmin{repo: repo}
}

// Execute creates the admin account unless an employee with that email
// already exists. It reports whether an account was created.
func (uc *EnsureAdmin) Execute(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}

	_, err := uc.repo.FindEmployeeByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domainerr.ErrNotFound) {
		return false, err
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return false, err
	}

	err = uc.repo.CreateEmployee(ctx, &models.Employee{
		Name:         "Admin",
		Job:          "Administrator",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if errors.Is(err, domainerr.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
