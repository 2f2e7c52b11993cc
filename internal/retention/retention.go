package retention

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/clock"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// Days is how long bookings and segments are kept.
const Days = 365

// Purger deletes records dated strictly before threshold. The two kinds are
// independent: a failure on one must not prevent the other.
type Purger interface {
	PurgeBookingsBefore(ctx context.Context, threshold time.Time) (int64, error)
	PurgeSegmentsBefore(ctx context.Context, threshold time.Time) (int64, error)
}

type Result struct {
	Threshold time.Time
	Bookings  int64
	Segments  int64
}

// Threshold is the first date that survives a sweep run on today.
func Threshold(today time.Time) time.Time {
	return models.DateOf(today).AddDate(0, 0, -Days)
}

// Sweeper runs one retention pass.
type Sweeper struct {
	purger  Purger
	clock   clock.Clock
	logger  zerolog.Logger
	metrics *metrics.BookingMetrics
}

func NewSweeper(
	purger Purger,
	clk clock.Clock,
	logger zerolog.Logger,
	m *metrics.BookingMetrics,
) *Sweeper {
	return &Sweeper{
		purger:  purger,
		clock:   clk,
		logger:  logger.With().Str("component", "retention").Logger(),
		metrics: m,
	}
}

// Run deletes everything dated before today minus Days. Both deletions are
// attempted; the returned error joins whichever failed.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	res := Result{Threshold: Threshold(s.clock.Today())}

	var errs []error

	n, err := s.purger.PurgeBookingsBefore(ctx, res.Threshold)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to purge bookings")
		errs = append(errs, fmt.Errorf("purge bookings: %w", err))
	} else {
		res.Bookings = n
		s.metrics.AddPurged("bookings", n)
	}

	n, err = s.purger.PurgeSegmentsBefore(ctx, res.Threshold)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to purge segments")
		errs = append(errs, fmt.Errorf("purge segments: %w", err))
	} else {
		res.Segments = n
		s.metrics.AddPurged("segments", n)
	}

	s.logger.Info().
		Str("threshold", res.Threshold.Format(models.DateLayout)).
		Int64("bookings", res.Bookings).
		Int64("segments", res.Segments).
		Msg("retention sweep finished")

	return res, errors.Join(errs...)
}

// --------------------------------------------------
// Scheduler
// --------------------------------------------------

type SchedulerConfig struct {
	// DailyHour and DailyMinute pick the wall-clock time of the daily run.
	DailyHour   int
	DailyMinute int
	// CheckInterval is how often the clock is polled.
	CheckInterval time.Duration
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		DailyHour:     23,
		DailyMinute:   59,
		CheckInterval: time.Minute,
	}
}

// Scheduler fires the sweeper once per day at the configured time.
type Scheduler struct {
	config      SchedulerConfig
	sweeper     *Sweeper
	clock       clock.Clock
	logger      zerolog.Logger
	mu          sync.Mutex
	lastRunDate string
	running     bool
	stopCh      chan struct{}
}

func NewScheduler(
	config SchedulerConfig,
	sweeper *Sweeper,
	clk clock.Clock,
	logger zerolog.Logger,
) *Scheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &Scheduler{
		config:  config,
		sweeper: sweeper,
		clock:   clk,
		logger:  logger.With().Str("component", "retention_scheduler").Logger(),
		stopCh:  make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info().
		Str("daily_time", fmt.Sprintf("%02d:%02d", s.config.DailyHour, s.config.DailyMinute)).
		Msg("retention scheduler started")

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("retention scheduler stopped by context")
			return
		case <-s.stopCh:
			s.logger.Info().Msg("retention scheduler stopped")
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()
}

// checkAndRun runs the sweep if the daily time has been reached and it has
// not run yet today. It reports whether a sweep was started.
func (s *Scheduler) checkAndRun(ctx context.Context) bool {
	now := s.clock.Now()
	today := now.Format(models.DateLayout)

	s.mu.Lock()
	if s.lastRunDate == today {
		s.mu.Unlock()
		return false
	}
	if now.Hour()*60+now.Minute() < s.config.DailyHour*60+s.config.DailyMinute {
		s.mu.Unlock()
		return false
	}
	s.lastRunDate = today
	s.mu.Unlock()

	_, _ = s.sweeper.Run(ctx)
	return true
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
