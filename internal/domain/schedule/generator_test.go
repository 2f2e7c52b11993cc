package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

func hm(h, m int) models.TimeOfDay { return models.NewTimeOfDay(h, m) }

func TestGenerateSegments(t *testing.T) {
	tests := []struct {
		name  string
		wh    WorkingHours
		count int
		first models.TimeOfDay
		last  models.TimeOfDay
	}{
		{
			name:  "full day with lunch",
			wh:    WorkingHours{StartTime: hm(9, 0), LunchBreakStart: hm(12, 0), LunchBreakEnd: hm(13, 0), EndTime: hm(18, 0)},
			count: 32,
			first: hm(9, 0),
			last:  hm(17, 45),
		},
		{
			name:  "no lunch",
			wh:    WorkingHours{StartTime: hm(8, 0), LunchBreakStart: hm(9, 0), LunchBreakEnd: hm(9, 0), EndTime: hm(9, 0)},
			count: 4,
			first: hm(8, 0),
			last:  hm(8, 45),
		},
		{
			name:  "end off the grid",
			wh:    WorkingHours{StartTime: hm(9, 0), LunchBreakStart: hm(9, 20), LunchBreakEnd: hm(9, 20), EndTime: hm(9, 20)},
			count: 2,
			first: hm(9, 0),
			last:  hm(9, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSegments(tt.wh)
			require.Len(t, got, tt.count)
			assert.Equal(t, tt.first, got[0])
			assert.Equal(t, tt.last, got[len(got)-1])
		})
	}
}

func TestGenerateSegmentsSkipsLunch(t *testing.T) {
	wh := WorkingHours{StartTime: hm(9, 0), LunchBreakStart: hm(10, 10), LunchBreakEnd: hm(10, 50), EndTime: hm(11, 30)}

	got := GenerateSegments(wh)

	assert.Equal(t, []models.TimeOfDay{
		hm(9, 0), hm(9, 15), hm(9, 30), hm(9, 45), hm(10, 0),
		hm(10, 50), hm(11, 5), hm(11, 20),
	}, got)
	for _, s := range got {
		assert.False(t, wh.InLunch(s), "segment %s starts in lunch", s)
	}
}

func TestGenerateSegmentsEmptyDay(t *testing.T) {
	wh := WorkingHours{StartTime: hm(9, 0), LunchBreakStart: hm(9, 0), LunchBreakEnd: hm(9, 0), EndTime: hm(9, 0)}
	assert.Empty(t, GenerateSegments(wh))
}

func TestWorkingHoursValidate(t *testing.T) {
	ok := WorkingHours{StartTime: hm(9, 0), LunchBreakStart: hm(12, 0), LunchBreakEnd: hm(13, 0), EndTime: hm(18, 0)}
	assert.NoError(t, ok.Validate())

	lunchInverted := ok
	lunchInverted.LunchBreakStart, lunchInverted.LunchBreakEnd = hm(13, 0), hm(12, 0)
	assert.ErrorIs(t, lunchInverted.Validate(), ErrWorkingHoursOrder)

	endBeforeStart := ok
	endBeforeStart.EndTime = hm(8, 0)
	assert.ErrorIs(t, endBeforeStart.Validate(), ErrWorkingHoursOrder)
}

func TestBuildSegments(t *testing.T) {
	date := time.Date(2026, 11, 2, 15, 30, 0, 0, time.UTC)
	wh := WorkingHours{StartTime: hm(9, 0), LunchBreakStart: hm(9, 30), LunchBreakEnd: hm(9, 30), EndTime: hm(9, 30)}

	segments := BuildSegments(7, date, wh)

	require.Len(t, segments, 2)
	for _, s := range segments {
		assert.Equal(t, uint(7), s.ServiceID)
		assert.True(t, s.IsAvailable)
		assert.Equal(t, models.DateOf(date), s.Date)
	}
}

func TestRegenerationPolicy(t *testing.T) {
	p, err := ParseRegenerationPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RegenerateReplace, p)

	p, err = ParseRegenerationPolicy(" Merge ")
	require.NoError(t, err)
	assert.Equal(t, RegenerateMerge, p)

	_, err = ParseRegenerationPolicy("keep")
	assert.Error(t, err)

	existing := []models.AvailableHour{
		{StartTime: hm(9, 0), IsAvailable: false},
		{StartTime: hm(9, 15), IsAvailable: true},
	}
	fresh := []models.AvailableHour{
		{StartTime: hm(9, 0), IsAvailable: true},
		{StartTime: hm(9, 15), IsAvailable: true},
		{StartTime: hm(9, 30), IsAvailable: true},
	}

	replaced := RegenerateReplace.Apply(existing, fresh)
	for _, s := range replaced {
		assert.True(t, s.IsAvailable)
	}

	merged := RegenerateMerge.Apply(existing, fresh)
	assert.False(t, merged[0].IsAvailable)
	assert.True(t, merged[1].IsAvailable)
	assert.True(t, merged[2].IsAvailable)
	assert.True(t, fresh[0].IsAvailable, "input must not be modified")
}
