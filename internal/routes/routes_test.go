package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/clock"
	domainBooking "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	domainSchedule "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	domainStaff "github.com/BruksfildServices01/booking-api/internal/domain/staff"
	"github.com/BruksfildServices01/booking-api/internal/infra/lock"
	"github.com/BruksfildServices01/booking-api/internal/infra/memstore"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixedRandom always yields n, so every code is 1000+n.
type fixedRandom int

func (r fixedRandom) Intn(int) int { return int(r) }

type testAPI struct {
	router     *gin.Engine
	store      *memstore.Store
	sender     *notify.StubEmailSender
	auditStore *audit.MemoryStore
	emp        *models.Employee
	token      string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	hash, err := domainStaff.HashPassword("secret123")
	require.NoError(t, err)

	emp := &models.Employee{
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: hash,
		IsAdmin:      true,
		Services: []models.Service{
			{Name: "Cut", DurationInMinutes: 45},
			{Name: "Wash", DurationInMinutes: 30},
		},
	}
	require.NoError(t, store.CreateEmployee(ctx, emp))

	images, err := storage.NewDiskImageStore(t.TempDir(), "/images")
	require.NoError(t, err)

	sender := notify.NewStubEmailSender(zerolog.Nop())
	auditStore := audit.NewMemoryStore(zerolog.Nop(), 100)
	dispatcher := audit.NewDispatcher(auditStore, zerolog.Nop())
	t.Cleanup(dispatcher.Close)

	reg := prometheus.NewRegistry()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Repos: Repositories{
			Schedule:     store,
			Booking:      store,
			Verification: store,
			Staff:        store,
		},
		Locker:       lock.NewLocalLocker(),
		Sender:       sender,
		Images:       images,
		Tokens:       tokens,
		Clock:        clock.NewFixed(time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)),
		Random:       fixedRandom(234),
		Metrics:      metrics.NewBookingMetrics(reg),
		Gatherer:     reg,
		Audit:        dispatcher,
		AuditStore:   auditStore,
		Scope:        domainBooking.ScopeEmployee,
		Regeneration: domainSchedule.RegenerateReplace,
		ContactInbox: "inbox@example.com",
		CORSOrigins:  []string{"*"},
		Logger:       zerolog.Nop(),
	})

	api := &testAPI{router: r, store: store, sender: sender, auditStore: auditStore, emp: emp}

	w := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	api.token = decode(t, w)["token"].(string)

	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *testAPI) setHours(t *testing.T, serviceID uint) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, "/api/admin/employees/"+itoa(a.emp.ID)+"/available-hours", map[string]any{
		"service_id":        serviceID,
		"date":              "2026-11-02",
		"start_time":        "09:00",
		"lunch_break_start": "10:00",
		"lunch_break_end":   "10:30",
		"end_time":          "12:00",
	}, a.token)
}

func (a *testAPI) book(t *testing.T, serviceID uint, start, email string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, "/api/user/appointments/book", map[string]any{
		"employee_id": a.emp.ID,
		"service_id":  serviceID,
		"date":        "2026-11-02",
		"start_time":  start,
		"name":        "Bruno",
		"email":       email,
		"phone":       "555-0101",
	}, "")
}

func itoa(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/auth/me", nil, api.token)
	require.Equal(t, http.StatusOK, w.Code)
	emp := decode(t, w)["employee"].(map[string]any)
	assert.Equal(t, "ana@example.com", emp["email"])

	w = api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/admin/employees/1/available-hours", map[string]any{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/admin/employees/1/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// reads stay public
	w = api.do(t, http.MethodGet, "/api/admin/employees/1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleAndBookingFlow(t *testing.T) {
	api := newTestAPI(t)
	cut := api.emp.Services[0]

	w := api.setHours(t, cut.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	// 09:00-09:45 and 10:30-11:45
	assert.Equal(t, float64(10), decode(t, w)["total"])

	w = api.do(t, http.MethodGet, "/api/admin/employees/"+itoa(api.emp.ID)+"/available-hours?date=2026-11-02", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(10), decode(t, w)["total"])

	w = api.book(t, cut.ID, "09:00", "bruno@example.com")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode(t, w)["booking"].(map[string]any)
	assert.Equal(t, "09:00", booking["start_time"])

	w = api.book(t, cut.ID, "11:00", "bruno@example.com")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "booking_already_exists", decode(t, w)["error_code"])

	w = api.book(t, cut.ID, "09:15", "carla@example.com")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_not_available", decode(t, w)["error_code"])

	w = api.do(t, http.MethodGet, "/api/admin/employees/"+itoa(api.emp.ID)+"/bookings", nil, api.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	require.Len(t, api.sender.Sent(), 1)
	assert.Equal(t, "bruno@example.com", api.sender.Sent()[0].To)

	require.Eventually(t, func() bool {
		logs, _, err := api.auditStore.List(context.Background(), audit.Filter{Action: "booking_created"})
		return err == nil && len(logs) == 1
	}, time.Second, 10*time.Millisecond)

	w = api.do(t, http.MethodGet, "/api/admin/audit-logs?action=hours_generated", nil, api.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}

func TestBookRejectsBadInput(t *testing.T) {
	api := newTestAPI(t)
	cut := api.emp.Services[0]
	require.Equal(t, http.StatusCreated, api.setHours(t, cut.ID).Code)

	w := api.book(t, cut.ID, "9h", "bruno@example.com")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_time", decode(t, w)["error_code"])

	w = api.book(t, cut.ID, "09:00", "not-an-email")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email", decode(t, w)["error_code"])

	w = api.book(t, cut.ID, "11:30", "bruno@example.com")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duration_exceeds_available_time", decode(t, w)["error_code"])
}

func TestBookKeepsBookingWhenEmailFails(t *testing.T) {
	api := newTestAPI(t)
	cut := api.emp.Services[0]
	require.Equal(t, http.StatusCreated, api.setHours(t, cut.ID).Code)

	api.sender.Err = errors.New("smtp down")

	w := api.book(t, cut.ID, "09:00", "bruno@example.com")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	body := decode(t, w)
	assert.Equal(t, "notification_failed", body["error_code"])
	assert.NotNil(t, body["booking"])

	bookings, err := api.store.ListBookings(context.Background(), api.emp.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestVerificationFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/user/appointments/send-verification-code", map[string]string{
		"email": "bruno@example.com",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, api.sender.Sent(), 1)
	assert.Contains(t, api.sender.Sent()[0].Body, "1234")

	verify := map[string]string{"email": "bruno@example.com", "code": "1234"}

	w = api.do(t, http.MethodPost, "/api/user/appointments/verify-code", verify, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// consumed
	w = api.do(t, http.MethodPost, "/api/user/appointments/verify-code", verify, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_verification_code", decode(t, w)["error_code"])
}

func TestEmployeeAdministration(t *testing.T) {
	api := newTestAPI(t)
	id := itoa(api.emp.ID)

	w := api.do(t, http.MethodPut, "/api/admin/employees/"+id+"/services", []map[string]any{
		{"name": "Beard", "duration_in_minutes": 20},
	}, api.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = api.do(t, http.MethodPut, "/api/admin/employees/"+id+"/services", []map[string]any{
		{"name": "Beard", "duration_in_minutes": 0},
	}, api.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_duration", decode(t, w)["error_code"])

	w = api.do(t, http.MethodGet, "/api/admin/employees/"+id+"/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = api.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Carla",
		"email":    "carla@example.com",
		"password": "secret123",
	}, api.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Carla",
		"email":    "carla@example.com",
		"password": "secret123",
	}, api.token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_registered", decode(t, w)["error_code"])

	w = api.do(t, http.MethodGet, "/api/user/employees", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total"])

	w = api.do(t, http.MethodDelete, "/api/admin/employees/"+id, nil, api.token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/api/admin/employees/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactMessage(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/user/send-message", map[string]string{
		"name":    "Bruno",
		"email":   "bruno@example.com",
		"subject": "Hello",
		"message": "Do you open on Sundays?",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, api.sender.Sent(), 1)
	assert.Equal(t, "inbox@example.com", api.sender.Sent()[0].To)
}
