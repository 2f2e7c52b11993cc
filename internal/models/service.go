package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index" json:"employee_id"`

	Name              string `gorm:"size:100;not null" json:"name"`
	DurationInMinutes int    `gorm:"not null" json:"duration_in_minutes"`

	AvailableHours []AvailableHour `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"available_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
