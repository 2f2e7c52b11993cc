package schedule

import (
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

// GridMinutes is the size of every bookable segment.
const GridMinutes = 15

// GenerateSegments partitions [StartTime, EndTime) into GridMinutes steps.
// When the cursor enters the lunch break it jumps straight to LunchBreakEnd,
// so no segment ever starts inside [LunchBreakStart, LunchBreakEnd).
func GenerateSegments(wh WorkingHours) []models.TimeOfDay {
	var out []models.TimeOfDay

	for cur := wh.StartTime; cur < wh.EndTime; {
		if wh.InLunch(cur) {
			cur = wh.LunchBreakEnd
			continue
		}
		out = append(out, cur)
		cur = cur.Add(GridMinutes)
	}

	return out
}

// BuildSegments materialises GenerateSegments for a service on a date.
// Every segment starts out available.
func BuildSegments(serviceID uint, date time.Time, wh WorkingHours) []models.AvailableHour {
	starts := GenerateSegments(wh)
	day := models.DateOf(date)

	segments := make([]models.AvailableHour, 0, len(starts))
	for _, start := range starts {
		segments = append(segments, models.AvailableHour{
			ServiceID:   serviceID,
			Date:        day,
			StartTime:   start,
			IsAvailable: true,
		})
	}
	return segments
}
