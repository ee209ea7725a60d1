package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/config"
	"github.com/meditrack/meditrack/internal/domain/billing"
	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/domain/scheduling"
	"github.com/meditrack/meditrack/internal/jobs"
	"github.com/meditrack/meditrack/internal/platform/db"
	"github.com/meditrack/meditrack/internal/platform/ids"
	"github.com/meditrack/meditrack/internal/platform/kvstore"
	"github.com/meditrack/meditrack/internal/platform/middleware"
	"github.com/meditrack/meditrack/internal/platform/notification"
	"github.com/meditrack/meditrack/internal/platform/validate"
)

const version = "0.1.0"

// storage is the repository set for one backend.
type storage struct {
	tx           db.Transactor
	pinger       db.Pinger
	doctors      identity.DoctorRepository
	patients     identity.PatientRepository
	appointments scheduling.AppointmentRepository
	bills        billing.BillRepository
	close        func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverBolt:
		store, err := kvstore.Open(cfg.BoltPath,
			identity.DoctorBucket, identity.PatientBucket, scheduling.AppointmentBucket, billing.BillBucket)
		if err != nil {
			return nil, err
		}
		return &storage{
			tx:           store,
			pinger:       store,
			doctors:      identity.NewDoctorRepoBolt(store),
			patients:     identity.NewPatientRepoBolt(store),
			appointments: scheduling.NewAppointmentRepoBolt(store),
			bills:        billing.NewBillRepoBolt(store),
			close:        func() { store.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, db.PoolConfig{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
		if err != nil {
			return nil, err
		}
		return &storage{
			tx:           db.NewPGTransactor(pool),
			pinger:       pool,
			doctors:      identity.NewDoctorRepoPG(pool),
			patients:     identity.NewPatientRepoPG(pool),
			appointments: scheduling.NewAppointmentRepoPG(pool),
			bills:        billing.NewBillRepoPG(pool),
			close:        pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// observeIDs advances the id counters past everything already stored.
func observeIDs(ctx context.Context, s *storage, gen *ids.Generator) (int, error) {
	n := 0
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan doctors: %w", err)
	}
	for _, d := range doctors {
		gen.Observe(d.ID)
	}
	n += len(doctors)

	patients, err := s.patients.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan patients: %w", err)
	}
	for _, p := range patients {
		gen.Observe(p.ID)
	}
	n += len(patients)

	appts, err := s.appointments.List(ctx, scheduling.Filter{})
	if err != nil {
		return 0, fmt.Errorf("scan appointments: %w", err)
	}
	for _, a := range appts {
		gen.Observe(a.ID)
	}
	n += len(appts)

	bills, err := s.bills.List(ctx, billing.Filter{})
	if err != nil {
		return 0, fmt.Errorf("scan bills: %w", err)
	}
	for _, b := range bills {
		gen.Observe(b.ID)
	}
	n += len(bills)

	return n, nil
}

type app struct {
	echo          *echo.Echo
	scheduler     *jobs.Scheduler
	dispatcher    *scheduling.Dispatcher
	limiter       *middleware.RateLimiter
	notifications *notification.Manager
	store         *storage
}

func (a *app) Close() {
	a.store.close()
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen := ids.NewGenerator()
	seen, err := observeIDs(ctx, store, gen)
	if err != nil {
		store.close()
		return nil, err
	}
	logger.Info().Int("records", seen).Msg("id counters restored")

	// Notifications
	notifier := notification.NewManager(notification.NewLogSender(logger), notification.NewTemplateEngine())
	dispatcher := scheduling.NewDispatcher(logger,
		notification.NewLogNotifier(logger),
		notification.NewTemplateNotifier(notifier),
	)
	logger.Info().Int("observers", dispatcher.Len()).Msg("appointment observers registered")

	// Domain services
	people := identity.NewService(store.doctors, store.patients, gen)
	lifecycle := scheduling.NewLifecycle(store.appointments, people, store.tx, gen, dispatcher)
	rates := billing.Rates{TaxRate: cfg.TaxRate, InsuranceDiscountRate: cfg.InsuranceDiscountRate}
	bills := billing.NewService(store.bills, lifecycle, people, store.tx,
		billing.NewFactory(gen, rates.TaxRate), billing.NewRegistry(rates), logger)

	// Background jobs
	scheduler := jobs.NewScheduler(logger)
	if _, err := scheduler.AddRevenueReport(cfg.RevenueReportSchedule, jobs.NewRevenueReportJob(bills, logger)); err != nil {
		store.close()
		return nil, err
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Validator = validate.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Recovery(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	})
	apiV1 := e.Group("/api/v1", limiter.Middleware())

	identity.NewHandler(people).RegisterRoutes(apiV1)
	scheduling.NewHandler(lifecycle).RegisterRoutes(apiV1)
	billing.NewHandler(bills).RegisterRoutes(apiV1)
	notification.NewHandler(notifier).RegisterRoutes(apiV1)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(cfg.StorageDriver, store.pinger))

	return &app{
		echo:          e,
		scheduler:     scheduler,
		dispatcher:    dispatcher,
		limiter:       limiter,
		notifications: notifier,
		store:         store,
	}, nil
}
