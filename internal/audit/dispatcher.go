package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Event struct {
	EmployeeID *uint
	ActorID    *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Dispatcher writes events on a single background worker. Dispatch never
// blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	sink   Sink
	logger zerolog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

const queueSize = 100

func NewDispatcher(sink Sink, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Write(context.Background(), toEntry(ev)); err != nil {
			d.logger.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

// Ptr is a helper for the optional id fields of Event.
func Ptr(v uint) *uint {
	return &v
}
