package staff

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/staff"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/imaging"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/storage"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

const minPasswordLength = 6

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name     string
	Job      string
	Email    string
	Phone    string
	Password string
	IsAdmin  bool

	// Image is the raw upload; empty means no picture.
	Image []byte

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo   domain.Repository
	images storage.ImageStore
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewRegister(
	repo domain.Repository,
	images storage.ImageStore,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *Register {
	return &Register{repo: repo, images: images, audit: audit, logger: logger}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.Employee, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" {
		return nil, httperr.Validation("name_required", "Name is required.")
	}
	if !validators.IsEmail(in.Email) {
		return nil, httperr.Validation("invalid_email", "A valid email address is required.")
	}
	if len(in.Password) < minPasswordLength {
		return nil, httperr.Validation("password_too_short", "Password must have at least 6 characters.")
	}

	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Picture
	// --------------------------------------------------
	var imageName string
	if len(in.Image) > 0 {
		data, err := imaging.Normalize(bytes.NewReader(in.Image), imaging.MaxSide)
		if err != nil {
			return nil, httperr.Validation("invalid_image", "The uploaded picture could not be read.")
		}
		imageName = storage.NewImageName("webp")
		if err := uc.images.Save(ctx, imageName, data, imaging.ContentType); err != nil {
			return nil, httperr.Dependency("image_upload_failed", "The picture could not be stored.", err)
		}
	}

	emp := &models.Employee{
		Name:         in.Name,
		Job:          strings.TrimSpace(in.Job),
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		ImageName:    imageName,
		IsAdmin:      in.IsAdmin,
	}

	if err := uc.repo.CreateEmployee(ctx, emp); err != nil {
		uc.dropImage(ctx, imageName)
		if errors.Is(err, domainerr.ErrDuplicate) {
			return nil, httperr.Conflict("email_already_registered", "An employee with this email already exists.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EmployeeID: &emp.ID,
		ActorID:    in.ActorID,
		Action:     "employee_registered",
		Entity:     "employee",
		EntityID:   &emp.ID,
	})

	return emp, nil
}

func (uc *Register) dropImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := uc.images.Delete(ctx, name); err != nil {
		uc.logger.Warn().Err(err).Str("image", name).Msg("failed to remove orphan picture")
	}
}
