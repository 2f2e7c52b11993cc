package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

// Sink persists audit entries.
type Sink interface {
	Write(ctx context.Context, entry models.AuditLog) error
}

type Filter struct {
	EmployeeID *uint
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time

	Limit  int
	Offset int
}

// Store is a Sink that can also be queried.
type Store interface {
	Sink
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// --------------------------------------------------
// Gorm
// --------------------------------------------------

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Write(ctx context.Context, entry models.AuditLog) error {
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *GormStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// --------------------------------------------------
// Memory
// --------------------------------------------------

// MemoryStore keeps the most recent entries in process and mirrors each
// one to the log.
type MemoryStore struct {
	logger  zerolog.Logger
	max     int
	mu      sync.Mutex
	nextID  uint
	entries []models.AuditLog
}

func NewMemoryStore(logger zerolog.Logger, max int) *MemoryStore {
	if max <= 0 {
		max = 1000
	}
	return &MemoryStore{logger: logger, max: max}
}

func (s *MemoryStore) Write(_ context.Context, entry models.AuditLog) error {
	s.mu.Lock()
	s.nextID++
	entry.ID = s.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.max {
		s.entries = s.entries[len(s.entries)-s.max:]
	}
	s.mu.Unlock()

	ev := s.logger.Info().
		Str("action", entry.Action).
		Str("entity", entry.Entity)
	if entry.EmployeeID != nil {
		ev = ev.Uint("employee_id", *entry.EmployeeID)
	}
	if entry.EntityID != nil {
		ev = ev.Uint("entity_id", *entry.EntityID)
	}
	if entry.Metadata != "" {
		ev = ev.RawJSON("metadata", []byte(entry.Metadata))
	}
	ev.Msg("audit")
	return nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, e := range s.entries {
		if f.EmployeeID != nil && (e.EmployeeID == nil || *e.EmployeeID != *f.EmployeeID) {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !e.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

func toEntry(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		EmployeeID: ev.EmployeeID,
		ActorID:    ev.ActorID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   metaJSON,
	}
}
