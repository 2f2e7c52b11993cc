package models

import "time"

type BookingRequest struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index:idx_booking_customer;not null" json:"employee_id"`
	ServiceID  uint `gorm:"not null" json:"service_id"`

	Date      time.Time `gorm:"type:date;index;not null" json:"date"`
	StartTime TimeOfDay `gorm:"not null" json:"start_time"`

	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:100;index:idx_booking_customer;not null" json:"email"`
	Phone string `gorm:"size:30;not null" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
}
