package dto

import "github.com/BruksfildServices01/booking-api/internal/models"

type AvailableHourDTO struct {
	ID          uint   `json:"id"`
	ServiceID   uint   `json:"service_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	IsAvailable bool   `json:"is_available"`
}

type BookingDTO struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee_id"`
	ServiceID  uint   `json:"service_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func AvailableHoursFrom(in []models.AvailableHour) []AvailableHourDTO {
	out := make([]AvailableHourDTO, 0, len(in))
	for _, s := range in {
		out = append(out, AvailableHourDTO{
			ID:          s.ID,
			ServiceID:   s.ServiceID,
			Date:        s.Date.Format(models.DateLayout),
			StartTime:   s.StartTime.String(),
			IsAvailable: s.IsAvailable,
		})
	}
	return out
}

func BookingFrom(b models.BookingRequest) BookingDTO {
	return BookingDTO{
		ID:         b.ID,
		EmployeeID: b.EmployeeID,
		ServiceID:  b.ServiceID,
		Date:       b.Date.Format(models.DateLayout),
		StartTime:  b.StartTime.String(),
		Name:       b.Name,
		Email:      b.Email,
		Phone:      b.Phone,
	}
}

func BookingsFrom(in []models.BookingRequest) []BookingDTO {
	out := make([]BookingDTO, 0, len(in))
	for _, b := range in {
		out = append(out, BookingFrom(b))
	}
	return out
}
