package schedule

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

// RegenerationPolicy decides what happens to a date's existing segments
// when working hours are set again.
type RegenerationPolicy string

const (
	// RegenerateReplace drops every existing segment, booked or not.
	RegenerateReplace RegenerationPolicy = "replace"
	// RegenerateMerge keeps the new shape but carries over unavailable
	// flags for start times that existed before.
	RegenerateMerge RegenerationPolicy = "merge"
)

func ParseRegenerationPolicy(s string) (RegenerationPolicy, error) {
	switch RegenerationPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RegenerateReplace:
		return RegenerateReplace, nil
	case RegenerateMerge:
		return RegenerateMerge, nil
	}
	return "", fmt.Errorf("unknown slot regeneration policy %q", s)
}

// Apply returns the segment set to persist for a date given what is
// currently stored and the freshly generated set.
func (p RegenerationPolicy) Apply(existing, fresh []models.AvailableHour) []models.AvailableHour {
	if p != RegenerateMerge {
		return fresh
	}

	taken := make(map[models.TimeOfDay]bool, len(existing))
	for _, seg := range existing {
		if !seg.IsAvailable {
			taken[seg.StartTime] = true
		}
	}

	out := make([]models.AvailableHour, len(fresh))
	for i, seg := range fresh {
		if taken[seg.StartTime] {
			seg.IsAvailable = false
		}
		out[i] = seg
	}
	return out
}
