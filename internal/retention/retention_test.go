package retention

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/clock"
)

type fakePurger struct {
	mu          sync.Mutex
	bookings    []time.Time
	segments    []time.Time
	thresholds  []time.Time
	bookingsErr error
}

func (f *fakePurger) PurgeBookingsBefore(_ context.Context, threshold time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.thresholds = append(f.thresholds, threshold)
	if f.bookingsErr != nil {
		return 0, f.bookingsErr
	}
	var kept []time.Time
	var n int64
	for _, d := range f.bookings {
		if d.Before(threshold) {
			n++
			continue
		}
		kept = append(kept, d)
	}
	f.bookings = kept
	return n, nil
}

func (f *fakePurger) PurgeSegmentsBefore(_ context.Context, threshold time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []time.Time
	var n int64
	for _, d := range f.segments {
		if d.Before(threshold) {
			n++
			continue
		}
		kept = append(kept, d)
	}
	f.segments = kept
	return n, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, date(2025, 10, 16), Threshold(time.Date(2026, 10, 16, 13, 45, 0, 0, time.UTC)))
}

func TestSweeperKeepsBoundaryDate(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC))
	p := &fakePurger{
		bookings: []time.Time{date(2025, 10, 15), date(2025, 10, 16), date(2026, 1, 1)},
		segments: []time.Time{date(2024, 1, 1), date(2025, 10, 16)},
	}
	s := NewSweeper(p, clk, zerolog.Nop(), nil)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Bookings)
	assert.EqualValues(t, 1, res.Segments)
	assert.Equal(t, []time.Time{date(2025, 10, 16), date(2026, 1, 1)}, p.bookings)
	assert.Equal(t, []time.Time{date(2025, 10, 16)}, p.segments)

	again, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Bookings)
	assert.Zero(t, again.Segments)
}

func TestSweeperPurgesSegmentsWhenBookingsFail(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	boom := errors.New("deadlock")
	p := &fakePurger{
		bookingsErr: boom,
		segments:    []time.Time{date(2020, 5, 5)},
	}
	s := NewSweeper(p, clk, zerolog.Nop(), nil)

	res, err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, res.Segments)
	assert.Empty(t, p.segments)
}

func TestSchedulerRunsOncePerDay(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 10, 16, 23, 58, 0, 0, time.UTC))
	p := &fakePurger{}
	sched := NewScheduler(DefaultSchedulerConfig(), NewSweeper(p, clk, zerolog.Nop(), nil), clk, zerolog.Nop())

	assert.False(t, sched.checkAndRun(context.Background()))

	clk.Advance(time.Minute)
	assert.True(t, sched.checkAndRun(context.Background()))
	assert.False(t, sched.checkAndRun(context.Background()))

	clk.Advance(24 * time.Hour)
	assert.True(t, sched.checkAndRun(context.Background()))

	require.Len(t, p.thresholds, 2)
	assert.Equal(t, date(2025, 10, 16), p.thresholds[0])
	assert.Equal(t, date(2025, 10, 17), p.thresholds[1])
}

func TestSchedulerCatchesUpMissedMinute(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 10, 16, 2, 59, 30, 0, time.UTC))
	p := &fakePurger{}
	cfg := SchedulerConfig{DailyHour: 3, DailyMinute: 0, CheckInterval: time.Minute}
	sched := NewScheduler(cfg, NewSweeper(p, clk, zerolog.Nop(), nil), clk, zerolog.Nop())

	assert.False(t, sched.checkAndRun(context.Background()))

	// the tick drifted past 03:00
	clk.Set(time.Date(2026, 10, 16, 3, 1, 10, 0, time.UTC))
	assert.True(t, sched.checkAndRun(context.Background()))

	clk.Set(time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC))
	assert.False(t, sched.checkAndRun(context.Background()))

	// started after the daily time on a new day
	clk.Set(time.Date(2026, 10, 17, 0, 5, 0, 0, time.UTC))
	assert.False(t, sched.checkAndRun(context.Background()))
	clk.Set(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	assert.True(t, sched.checkAndRun(context.Background()))

	require.Len(t, p.thresholds, 2)
	assert.Equal(t, date(2025, 10, 16), p.thresholds[0])
	assert.Equal(t, date(2025, 10, 17), p.thresholds[1])
}

func TestSchedulerStop(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
	sched := NewScheduler(SchedulerConfig{CheckInterval: time.Millisecond}, NewSweeper(&fakePurger{}, clk, zerolog.Nop(), nil), clk, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		sched.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, sched.IsRunning, time.Second, time.Millisecond)
	sched.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, sched.IsRunning())
}
