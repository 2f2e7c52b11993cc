package models

import "time"

type EmailVerification struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"size:100;index;not null" json:"email"`
	Code  string `gorm:"size:4;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
