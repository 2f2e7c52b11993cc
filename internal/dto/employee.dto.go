package dto

import (
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type ServiceDTO struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	DurationInMinutes int    `json:"duration_in_minutes"`
}

type EmployeeDTO struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Job       string       `json:"job"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	ImageURL  string       `json:"image_url,omitempty"`
	IsAdmin   bool         `json:"is_admin"`
	Services  []ServiceDTO `json:"services"`
	CreatedAt time.Time    `json:"created_at"`
}

func ServiceFrom(s models.Service) ServiceDTO {
	return ServiceDTO{ID: s.ID, Name: s.Name, DurationInMinutes: s.DurationInMinutes}
}

func ServicesFrom(in []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(in))
	for _, s := range in {
		out = append(out, ServiceFrom(s))
	}
	return out
}

// EmployeeFrom maps a model; imageURL resolves the stored picture name.
func EmployeeFrom(e models.Employee, imageURL func(string) string) EmployeeDTO {
	out := EmployeeDTO{
		ID:        e.ID,
		Name:      e.Name,
		Job:       e.Job,
		Email:     e.Email,
		Phone:     e.Phone,
		IsAdmin:   e.IsAdmin,
		Services:  ServicesFrom(e.Services),
		CreatedAt: e.CreatedAt,
	}
	if e.ImageName != "" && imageURL != nil {
		out.ImageURL = imageURL(e.ImageName)
	}
	return out
}
