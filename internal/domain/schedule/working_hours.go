package schedule

import (
	"errors"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

var ErrWorkingHoursOrder = errors.New("working hours must satisfy start <= lunch start <= lunch end <= end")

// WorkingHours bounds a working day and its lunch break.
type WorkingHours struct {
	StartTime       models.TimeOfDay `json:"start_time"`
	LunchBreakStart models.TimeOfDay `json:"lunch_break_start"`
	LunchBreakEnd   models.TimeOfDay `json:"lunch_break_end"`
	EndTime         models.TimeOfDay `json:"end_time"`
}

func (wh WorkingHours) Validate() error {
	if wh.StartTime > wh.LunchBreakStart ||
		wh.LunchBreakStart > wh.LunchBreakEnd ||
		wh.LunchBreakEnd > wh.EndTime {
		return ErrWorkingHoursOrder
	}
	return nil
}

// InLunch reports whether t falls in [LunchBreakStart, LunchBreakEnd).
func (wh WorkingHours) InLunch(t models.TimeOfDay) bool {
	return t >= wh.LunchBreakStart && t < wh.LunchBreakEnd
}
