package clock

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

// Clock is the source of "now" for anything date-sensitive.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() time.Time { return models.DateOf(time.Now()) }

// Fixed is a settable clock for tests.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Today() time.Time {
	return models.DateOf(f.Now())
}

func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
