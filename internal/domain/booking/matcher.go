package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

var (
	ErrSlotNotAvailable = errors.New("selected time slot is not available")
	ErrDurationExceeds  = errors.New("service duration is longer than available time")
)

// Scope selects which segments a booking reserves.
type Scope string

const (
	// ScopeEmployee pools the available segments of all the employee's
	// services; a booking marks overlapping segments of every service.
	ScopeEmployee Scope = "employee"
	// ScopeService only looks at the requested service's segments.
	ScopeService Scope = "service"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeEmployee:
		return ScopeEmployee, nil
	case ScopeService:
		return ScopeService, nil
	}
	return "", fmt.Errorf("unknown booking scope %q", s)
}

type MatchRequest struct {
	ServiceID       uint
	Start           models.TimeOfDay
	DurationMinutes int
	Scope           Scope
}

// Match is the run of segments a booking occupies.
type Match struct {
	Start models.TimeOfDay
	// End is the start of the last occupied segment (inclusive).
	End      models.TimeOfDay
	Segments []models.AvailableHour
}

func (m Match) SegmentIDs() []uint {
	ids := make([]uint, len(m.Segments))
	for i, s := range m.Segments {
		ids[i] = s.ID
	}
	return ids
}

// FindRun locates the segments a booking of req.DurationMinutes starting at
// req.Start occupies. pool holds the segments of the booking date; only the
// available ones are considered.
func FindRun(pool []models.AvailableHour, req MatchRequest) (Match, error) {
	available := make([]models.AvailableHour, 0, len(pool))
	for _, seg := range pool {
		if !seg.IsAvailable {
			continue
		}
		if req.Scope == ScopeService && seg.ServiceID != req.ServiceID {
			continue
		}
		available = append(available, seg)
	}

	startFound := false
	for _, seg := range available {
		if seg.StartTime == req.Start {
			startFound = true
			break
		}
	}
	if !startFound {
		return Match{}, ErrSlotNotAvailable
	}

	end := req.Start.Add(req.DurationMinutes - schedule.GridMinutes)

	forService := make([]models.AvailableHour, 0, len(available))
	for _, seg := range available {
		if seg.ServiceID == req.ServiceID {
			forService = append(forService, seg)
		}
	}
	sort.Slice(forService, func(i, j int) bool {
		return forService[i].StartTime < forService[j].StartTime
	})

	if indexOf(forService, end) < 0 {
		// duration does not land on a segment boundary: stretch to the
		// closest following segment of the service.
		next := -1
		for i, seg := range forService {
			if seg.StartTime > end {
				next = i
				break
			}
		}
		if next < 0 {
			return Match{}, ErrDurationExceeds
		}
		end = forService[next].StartTime
	}

	var occupied []models.AvailableHour
	for _, seg := range available {
		if seg.StartTime >= req.Start && seg.StartTime <= end {
			occupied = append(occupied, seg)
		}
	}
	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].StartTime < occupied[j].StartTime
	})

	return Match{Start: req.Start, End: end, Segments: occupied}, nil
}

func indexOf(segments []models.AvailableHour, start models.TimeOfDay) int {
	for i, seg := range segments {
		if seg.StartTime == start {
			return i
		}
	}
	return -1
}
