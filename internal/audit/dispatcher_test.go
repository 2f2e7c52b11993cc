package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
	block   chan struct{}
}

func (s *recordingSink) Write(_ context.Context, entry models.AuditLog) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func TestDispatcherWritesEvents(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zerolog.Nop())

	d.Dispatch(Event{
		EmployeeID: Ptr(3),
		Action:     "booking_created",
		Entity:     "booking_request",
		EntityID:   Ptr(9),
		Metadata:   map[string]string{"date": "2026-11-02"},
	})
	d.Close()

	require.Len(t, sink.entries, 1)
	got := sink.entries[0]
	assert.Equal(t, "booking_created", got.Action)
	assert.EqualValues(t, 3, *got.EmployeeID)
	assert.EqualValues(t, 9, *got.EntityID)
	assert.JSONEq(t, `{"date":"2026-11-02"}`, got.Metadata)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(sink, zerolog.Nop())

	for i := 0; i < queueSize+20; i++ {
		d.Dispatch(Event{Action: "hours_generated"})
	}
	close(sink.block)
	d.Close()

	assert.LessOrEqual(t, len(sink.entries), queueSize+1)
	assert.Greater(t, len(sink.entries), 0)
}

func TestDispatcherSinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink, zerolog.Nop())

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	assert.Len(t, sink.entries, 2)
}

func TestDispatchAfterCloseAndNil(t *testing.T) {
	d := NewDispatcher(&recordingSink{}, zerolog.Nop())
	d.Close()
	d.Close()
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() { nilDispatcher.Dispatch(Event{Action: "x"}) })
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(zerolog.Nop(), 3)

	for _, action := range []string{"a", "b", "a", "a"} {
		require.NoError(t, s.Write(ctx, models.AuditLog{Action: action, EmployeeID: Ptr(1)}))
	}
	require.NoError(t, s.Write(ctx, models.AuditLog{Action: "a", EmployeeID: Ptr(2)}))

	// only the newest three survive
	logs, total, err := s.List(ctx, Filter{Action: "a"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 3)
	assert.Greater(t, logs[0].ID, logs[1].ID)

	logs, _, err = s.List(ctx, Filter{Action: "b"})
	require.NoError(t, err)
	assert.Empty(t, logs)

	logs, total, err = s.List(ctx, Filter{EmployeeID: Ptr(1), Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, logs, 1)

	logs, _, err = s.List(ctx, Filter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
