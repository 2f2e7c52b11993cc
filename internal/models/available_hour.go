package models

import "time"

// AvailableHour is one bookable segment of a service on a date.
type AvailableHour struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ServiceID   uint      `gorm:"uniqueIndex:idx_segment_slot;not null" json:"service_id"`
	Date        time.Time `gorm:"type:date;uniqueIndex:idx_segment_slot;index;not null" json:"date"`
	StartTime   TimeOfDay `gorm:"uniqueIndex:idx_segment_slot;not null" json:"start_time"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
}
