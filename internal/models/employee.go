package models

import "time"

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100" json:"name"`
	Job          string `gorm:"size:100" json:"job"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:30" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	ImageName    string `gorm:"size:255" json:"image_name"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	Services []Service        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services,omitempty"`
	Bookings []BookingRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
