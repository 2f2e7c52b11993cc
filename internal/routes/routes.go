package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/clock"
	domainBooking "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	domainSchedule "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	domainStaff "github.com/BruksfildServices01/booking-api/internal/domain/staff"
	domainVerification "github.com/BruksfildServices01/booking-api/internal/domain/verification"
	"github.com/BruksfildServices01/booking-api/internal/handlers"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/storage"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
	ucContact "github.com/BruksfildServices01/booking-api/internal/usecase/contact"
	ucSchedule "github.com/BruksfildServices01/booking-api/internal/usecase/schedule"
	ucStaff "github.com/BruksfildServices01/booking-api/internal/usecase/staff"
	ucVerification "github.com/BruksfildServices01/booking-api/internal/usecase/verification"
)

type Repositories struct {
	Schedule     domainSchedule.Repository
	Booking      domainBooking.Repository
	Verification domainVerification.Repository
	Staff        domainStaff.Repository
}

// Deps is the infrastructure the API runs on; use cases and handlers are
// built from it in RegisterRoutes.
type Deps struct {
	Repos Repositories

	Locker  domainBooking.Locker
	Sender  notify.EmailSender
	Images  storage.ImageStore
	Tokens  *auth.TokenIssuer
	Clock   clock.Clock
	Random  domainVerification.RandomSource
	Metrics *metrics.BookingMetrics
	// Gatherer backs /metrics; nil skips the endpoint.
	Gatherer prometheus.Gatherer

	Audit      *audit.Dispatcher
	AuditStore audit.Store

	Scope        domainBooking.Scope
	Regeneration domainSchedule.RegenerationPolicy
	ContactInbox string
	CORSOrigins  []string
	// EmailDomainCheck, when set, rejects verification requests whose
	// domain cannot receive mail.
	EmailDomainCheck func(email string) bool

	Logger zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(deps.CORSOrigins))

	imageURL := deps.Images.URL

	// ======================================================
	// 🧠 USE CASES: SCHEDULE
	// ======================================================
	setAvailableHoursUC := ucSchedule.NewSetAvailableHours(
		deps.Repos.Schedule,
		deps.Regeneration,
		deps.Audit,
		deps.Metrics,
	)
	listAvailableHoursUC := ucSchedule.NewListAvailableHours(deps.Repos.Schedule)
	deleteSegmentUC := ucSchedule.NewDeleteSegment(deps.Repos.Schedule, deps.Audit)

	// ======================================================
	// 🧠 USE CASES: BOOKING / VERIFICATION
	// ======================================================
	bookAppointmentUC := ucBooking.NewBookAppointment(ucBooking.BookAppointmentDeps{
		Repo:    deps.Repos.Booking,
		Locker:  deps.Locker,
		Sender:  deps.Sender,
		Clock:   deps.Clock,
		Scope:   deps.Scope,
		Audit:   deps.Audit,
		Metrics: deps.Metrics,
		Logger:  deps.Logger,
	})
	listBookingsUC := ucBooking.NewListBookings(deps.Repos.Booking)

	sendCodeUC := ucVerification.NewSendCode(
		deps.Repos.Verification,
		deps.Sender,
		deps.Random,
		deps.Metrics,
		deps.EmailDomainCheck,
	)
	verifyCodeUC := ucVerification.NewVerifyCode(deps.Repos.Verification, deps.Metrics)

	// ======================================================
	// 🧠 USE CASES: STAFF / CONTACT
	// ======================================================
	loginUC := ucStaff.NewLogin(deps.Repos.Staff, deps.Tokens)
	registerUC := ucStaff.NewRegister(deps.Repos.Staff, deps.Images, deps.Audit, deps.Logger)
	getEmployeeUC := ucStaff.NewGetEmployee(deps.Repos.Staff)

	sendMessageUC := ucContact.NewSendMessage(deps.Sender, deps.ContactInbox)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(loginUC, registerUC, getEmployeeUC, imageURL)

	employeeHandler := handlers.NewEmployeeHandler(handlers.EmployeeHandlerDeps{
		List:            ucStaff.NewListEmployees(deps.Repos.Staff),
		Get:             getEmployeeUC,
		Delete:          ucStaff.NewDeleteEmployee(deps.Repos.Staff, deps.Images, deps.Audit, deps.Logger),
		ListServices:    ucStaff.NewListServices(deps.Repos.Staff),
		ReplaceServices: ucStaff.NewReplaceServices(deps.Repos.Staff, deps.Audit),
		ListBookings:    listBookingsUC,
		ImageURL:        imageURL,
	})

	scheduleHandler := handlers.NewScheduleHandler(
		setAvailableHoursUC,
		listAvailableHoursUC,
		deleteSegmentUC,
	)

	bookingHandler := handlers.NewBookingHandler(bookAppointmentUC, sendCodeUC, verifyCodeUC)
	contactHandler := handlers.NewContactHandler(sendMessageUC)

	// ======================================================
	// 🔧 INFRA ENDPOINTS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	if disk, ok := deps.Images.(*storage.DiskImageStore); ok {
		r.Static("/images", disk.Dir())
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PUBLIC
		// ------------------------------
		user := api.Group("/user")
		{
			user.GET("/employees", employeeHandler.List)
			user.POST("/appointments/book", bookingHandler.Book)
			user.POST("/appointments/send-verification-code", bookingHandler.SendVerificationCode)
			user.POST("/appointments/verify-code", bookingHandler.VerifyCode)
			user.POST("/send-message", contactHandler.SendMessage)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/employees/:employeeId", employeeHandler.Get)
			admin.GET("/employees/:employeeId/services", employeeHandler.ListServices)
			admin.GET("/employees/:employeeId/available-hours", scheduleHandler.ListAvailableHours)
		}

		// ------------------------------
		// 🔐 API PRIVATE
		// ------------------------------
		requireAuth := middleware.AuthMiddleware(deps.Tokens)

		secured := api.Group("/")
		secured.Use(requireAuth)
		{
			secured.POST("/auth/register", authHandler.Register)
			secured.GET("/auth/me", authHandler.Me)
		}

		securedAdmin := admin.Group("/")
		securedAdmin.Use(requireAuth)
		{
			securedAdmin.POST("/employees/:employeeId/available-hours", scheduleHandler.SetAvailableHours)
			securedAdmin.DELETE("/available-hours/:hourId", scheduleHandler.DeleteAvailableHour)
			securedAdmin.DELETE("/employees/:employeeId", employeeHandler.Delete)
			securedAdmin.GET("/employees/:employeeId/bookings", employeeHandler.ListBookings)
			securedAdmin.PUT("/employees/:employeeId/services", employeeHandler.ReplaceServices)

			if deps.AuditStore != nil {
				securedAdmin.GET("/audit-logs", handlers.NewAuditLogsHandler(deps.AuditStore).List)
			}
		}
	}
}
