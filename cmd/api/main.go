package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/clock"
	"github.com/BruksfildServices01/booking-api/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-api/internal/db"
	domainBooking "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	domainSchedule "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	domainVerification "github.com/BruksfildServices01/booking-api/internal/domain/verification"
	"github.com/BruksfildServices01/booking-api/internal/infra/lock"
	"github.com/BruksfildServices01/booking-api/internal/infra/memstore"
	infraRepo "github.com/BruksfildServices01/booking-api/internal/infra/repository"
	applog "github.com/BruksfildServices01/booking-api/internal/logger"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/retention"
	"github.com/BruksfildServices01/booking-api/internal/routes"
	"github.com/BruksfildServices01/booking-api/internal/storage"
	ucStaff "github.com/BruksfildServices01/booking-api/internal/usecase/staff"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

type backend struct {
	repos  routes.Repositories
	purger retention.Purger
	audit  audit.Store
	close  func()
}

func main() {

	cfg := config.Load()
	logger := applog.New(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scope, err := domainBooking.ParseScope(cfg.BookingScope)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid BOOKING_SCOPE")
	}
	regeneration, err := domainSchedule.ParseRegenerationPolicy(cfg.SlotRegeneration)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid SLOT_REGENERATION")
	}

	// ======================================================
	// INFRA
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(reg)

	be, err := openBackend(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer be.close()

	locker, closeLocker := newLocker(ctx, cfg, logger)
	defer closeLocker()

	sender := notify.WithMetrics(newEmailSender(ctx, cfg, logger), bookingMetrics)

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up image storage")
	}

	dispatcher := audit.NewDispatcher(be.audit, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.System{}

	created, err := ucStaff.NewEnsureAdmin(be.repos.Staff).Execute(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin")
	}
	if created {
		logger.Info().Str("email", cfg.AdminEmail).Msg("admin account created")
	}

	var domainCheck func(string) bool
	if cfg.EmailDomainCheck {
		domainCheck = validators.IsEmailDomainValid
	}

	inbox := cfg.ContactInbox
	if inbox == "" {
		inbox = cfg.EmailFrom
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Repos:            be.repos,
		Locker:           locker,
		Sender:           sender,
		Images:           images,
		Tokens:           tokens,
		Clock:            clk,
		Random:           domainVerification.NewTimeSeededSource(),
		Metrics:          bookingMetrics,
		Gatherer:         reg,
		Audit:            dispatcher,
		AuditStore:       be.audit,
		Scope:            scope,
		Regeneration:     regeneration,
		ContactInbox:     inbox,
		CORSOrigins:      cfg.CORSOrigins,
		EmailDomainCheck: domainCheck,
		Logger:           logger,
	})

	// ======================================================
	// RETENTION
	// ======================================================
	sweeper := retention.NewSweeper(be.purger, clk, logger, bookingMetrics)
	scheduler := retention.NewScheduler(retention.SchedulerConfig{
		DailyHour:     cfg.RetentionHour,
		DailyMinute:   cfg.RetentionMinute,
		CheckInterval: time.Minute,
	}, sweeper, clk, logger)
	go scheduler.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("driver", cfg.StorageDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	scheduler.Stop()
	dispatcher.Close()
}

// openBackend picks the repositories for STORAGE_DRIVER.
func openBackend(cfg *config.Config, logger zerolog.Logger) (*backend, error) {
	if cfg.StorageDriver == "memory" {
		store := memstore.New()
		return &backend{
			repos: routes.Repositories{
				Schedule:     store,
				Booking:      store,
				Verification: store,
				Staff:        store,
			},
			purger: store,
			audit:  audit.NewMemoryStore(logger, 1000),
			close:  func() {},
		}, nil
	}

	gdb, err := dbpkg.Open(cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	return &backend{
		repos: routes.Repositories{
			Schedule:     infraRepo.NewScheduleGormRepository(gdb),
			Booking:      infraRepo.NewBookingGormRepository(gdb),
			Verification: infraRepo.NewVerificationGormRepository(gdb),
			Staff:        infraRepo.NewStaffGormRepository(gdb),
		},
		purger: infraRepo.NewRetentionGormRepository(gdb),
		audit:  audit.NewGormStore(gdb),
		close: func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

// newLocker uses Redis when REDIS_ADDR is set, so several API instances
// share one booking lock. Otherwise the lock is process-local.
func newLocker(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (domainBooking.Locker, func()) {
	if !cfg.UsesRedis() {
		return lock.NewLocalLocker(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis not reachable")
	}

	return lock.NewRedisLocker(rdb, cfg.BookingLockTTL, logger), func() { _ = rdb.Close() }
}

func newEmailSender(ctx context.Context, cfg *config.Config, logger zerolog.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger); s != nil {
			return s
		}
		logger.Warn().Msg("SENDGRID_API_KEY missing, falling back to stub email sender")

	case "ses":
		opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
		if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load aws config for ses")
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
	}

	return notify.NewStubEmailSender(logger)
}

func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if !cfg.UsesS3() {
		return storage.NewDiskImageStore(cfg.ImageDir, "/images")
	}

	client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.AWSEndpoint,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewS3ImageStore(client, cfg.S3Bucket, cfg.S3PublicBaseURL), nil
}
