// Package memstore keeps every repository in process memory. It backs
// STORAGE_DRIVER=memory and the use-case tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/domain"
	"github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/domain/staff"
	"github.com/BruksfildServices01/booking-api/internal/domain/verification"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/retention"
)

type Store struct {
	mu sync.Mutex

	nextID uint

	employees     map[uint]models.Employee
	services      map[uint]models.Service
	segments      map[uint]models.AvailableHour
	bookings      map[uint]models.BookingRequest
	verifications map[uint]models.EmailVerification

	now func() time.Time
}

func New() *Store {
	return &Store{
		employees:     make(map[uint]models.Employee),
		services:      make(map[uint]models.Service),
		segments:      make(map[uint]models.AvailableHour),
		bookings:      make(map[uint]models.BookingRequest),
		verifications: make(map[uint]models.EmailVerification),
		now:           time.Now,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Employees / Services
// --------------------------------------------------

func (s *Store) employeeWithServices(employeeID uint) (*models.Employee, error) {
	emp, ok := s.employees[employeeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	emp.Services = s.servicesOf(employeeID)
	emp.Bookings = nil
	return &emp, nil
}

func (s *Store) servicesOf(employeeID uint) []models.Service {
	var out []models.Service
	for _, svc := range s.services {
		if svc.EmployeeID == employeeID {
			svc.AvailableHours = nil
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetEmployeeWithServices(_ context.Context, employeeID uint) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employeeWithServices(employeeID)
}

func (s *Store) ListEmployees(_ context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Employee, 0, len(s.employees))
	for id := range s.employees {
		emp, _ := s.employeeWithServices(id)
		out = append(out, *emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindEmployeeByEmail(_ context.Context, email string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, emp := range s.employees {
		if strings.EqualFold(emp.Email, email) {
			e := emp
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) CreateEmployee(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, emp := range s.employees {
		if strings.EqualFold(emp.Email, e.Email) {
			return domain.ErrDuplicate
		}
	}

	now := s.now()
	e.ID = s.id()
	e.CreatedAt, e.UpdatedAt = now, now

	stored := *e
	stored.Bookings = nil
	services := stored.Services
	stored.Services = nil
	s.employees[e.ID] = stored

	for i := range services {
		services[i].ID = s.id()
		services[i].EmployeeID = e.ID
		services[i].CreatedAt, services[i].UpdatedAt = now, now
		s.services[services[i].ID] = services[i]
	}
	e.Services = services
	return nil
}

func (s *Store) DeleteEmployee(_ context.Context, employeeID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return domain.ErrNotFound
	}
	s.dropServicesOf(employeeID)
	s.dropBookingsOf(employeeID)
	delete(s.employees, employeeID)
	return nil
}

func (s *Store) ReplaceServices(_ context.Context, employeeID uint, services []models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return domain.ErrNotFound
	}
	s.dropServicesOf(employeeID)
	s.dropBookingsOf(employeeID)

	now := s.now()
	for i := range services {
		services[i].ID = s.id()
		services[i].EmployeeID = employeeID
		services[i].AvailableHours = nil
		services[i].CreatedAt, services[i].UpdatedAt = now, now
		s.services[services[i].ID] = services[i]
	}
	return nil
}

func (s *Store) ListServices(_ context.Context, employeeID uint) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.servicesOf(employeeID), nil
}

func (s *Store) dropServicesOf(employeeID uint) {
	for id, svc := range s.services {
		if svc.EmployeeID != employeeID {
			continue
		}
		for segID, seg := range s.segments {
			if seg.ServiceID == id {
				delete(s.segments, segID)
			}
		}
		delete(s.services, id)
	}
}

func (s *Store) dropBookingsOf(employeeID uint) {
	for id, b := range s.bookings {
		if b.EmployeeID == employeeID {
			delete(s.bookings, id)
		}
	}
}

// --------------------------------------------------
// Segments
// --------------------------------------------------

func sortSegments(segs []models.AvailableHour) {
	sort.Slice(segs, func(i, j int) bool {
		if !segs[i].Date.Equal(segs[j].Date) {
			return segs[i].Date.Before(segs[j].Date)
		}
		if segs[i].StartTime != segs[j].StartTime {
			return segs[i].StartTime < segs[j].StartTime
		}
		return segs[i].ServiceID < segs[j].ServiceID
	})
}

func (s *Store) ListSegments(_ context.Context, serviceID uint, date time.Time) ([]models.AvailableHour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := models.DateOf(date)
	var out []models.AvailableHour
	for _, seg := range s.segments {
		if seg.ServiceID == serviceID && seg.Date.Equal(day) {
			out = append(out, seg)
		}
	}
	sortSegments(out)
	return out, nil
}

func (s *Store) ReplaceSegments(_ context.Context, serviceID uint, date time.Time, segments []models.AvailableHour) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[models.TimeOfDay]bool, len(segments))
	for _, seg := range segments {
		if seen[seg.StartTime] {
			return domain.ErrDuplicate
		}
		seen[seg.StartTime] = true
	}

	day := models.DateOf(date)
	for id, seg := range s.segments {
		if seg.ServiceID == serviceID && seg.Date.Equal(day) {
			delete(s.segments, id)
		}
	}

	for i := range segments {
		segments[i].ID = s.id()
		segments[i].ServiceID = serviceID
		segments[i].Date = day
		s.segments[segments[i].ID] = segments[i]
	}
	return nil
}

func (s *Store) ListEmployeeSegments(_ context.Context, employeeID uint, date *time.Time) ([]models.AvailableHour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AvailableHour
	for _, seg := range s.segments {
		svc, ok := s.services[seg.ServiceID]
		if !ok || svc.EmployeeID != employeeID {
			continue
		}
		if date != nil && !seg.Date.Equal(models.DateOf(*date)) {
			continue
		}
		out = append(out, seg)
	}
	sortSegments(out)
	return out, nil
}

func (s *Store) DeleteSegment(_ context.Context, segmentID uint) (*models.AvailableHour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.segments[segmentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.segments, segmentID)
	return &seg, nil
}

func (s *Store) ListAvailableSegments(_ context.Context, serviceIDs []uint, date time.Time) ([]models.AvailableHour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[uint]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		wanted[id] = true
	}

	day := models.DateOf(date)
	var out []models.AvailableHour
	for _, seg := range s.segments {
		if wanted[seg.ServiceID] && seg.Date.Equal(day) && seg.IsAvailable {
			out = append(out, seg)
		}
	}
	sortSegments(out)
	return out, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *Store) HasBookingAfter(_ context.Context, employeeID uint, email string, day time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := models.DateOf(day)
	for _, b := range s.bookings {
		if b.EmployeeID == employeeID && b.Email == email && b.Date.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CommitBooking(_ context.Context, b *models.BookingRequest, segmentIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range segmentIDs {
		seg, ok := s.segments[id]
		if !ok || !seg.IsAvailable {
			return domain.ErrSegmentTaken
		}
	}
	for _, id := range segmentIDs {
		seg := s.segments[id]
		seg.IsAvailable = false
		s.segments[id] = seg
	}

	b.ID = s.id()
	b.Date = models.DateOf(b.Date)
	b.CreatedAt = s.now()
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) ListBookings(_ context.Context, employeeID uint) ([]models.BookingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.BookingRequest
	for _, b := range s.bookings {
		if b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// --------------------------------------------------
// Verifications
// --------------------------------------------------

func (s *Store) CreateVerification(_ context.Context, v *models.EmailVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.id()
	v.CreatedAt = s.now()
	s.verifications[v.ID] = *v
	return nil
}

func (s *Store) LatestVerification(_ context.Context, email string) (*models.EmailVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.EmailVerification
	for _, v := range s.verifications {
		if v.Email != email {
			continue
		}
		if latest == nil || v.ID > latest.ID {
			vv := v
			latest = &vv
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (s *Store) DeleteVerification(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.verifications, id)
	return nil
}

// --------------------------------------------------
// Retention
// --------------------------------------------------

func (s *Store) PurgeBookingsBefore(_ context.Context, threshold time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := models.DateOf(threshold)
	var n int64
	for id, b := range s.bookings {
		if b.Date.Before(cutoff) {
			delete(s.bookings, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) PurgeSegmentsBefore(_ context.Context, threshold time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := models.DateOf(threshold)
	var n int64
	for id, seg := range s.segments {
		if seg.Date.Before(cutoff) {
			delete(s.segments, id)
			n++
		}
	}
	return n, nil
}

var (
	_ schedule.Repository     = (*Store)(nil)
	_ booking.Repository      = (*Store)(nil)
	_ verification.Repository = (*Store)(nil)
	_ staff.Repository        = (*Store)(nil)
	_ retention.Purger        = (*Store)(nil)
)
