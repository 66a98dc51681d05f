package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/fieldops/backend/internal/application/billing"
	catalogapp "github.com/fieldops/backend/internal/application/catalog"
	customerapp "github.com/fieldops/backend/internal/application/customer"
	notificationapp "github.com/fieldops/backend/internal/application/notification"
	"github.com/fieldops/backend/internal/application/query"
	schedulingapp "github.com/fieldops/backend/internal/application/scheduling"
	workorderapp "github.com/fieldops/backend/internal/application/workorder"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/auth"
	"github.com/fieldops/backend/internal/infrastructure/cache"
	"github.com/fieldops/backend/internal/infrastructure/config"
	"github.com/fieldops/backend/internal/infrastructure/event"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/persistence"
	"github.com/fieldops/backend/internal/infrastructure/scheduler"
	"github.com/fieldops/backend/internal/infrastructure/storage"
	"github.com/fieldops/backend/internal/infrastructure/telemetry"
	"github.com/fieldops/backend/internal/interfaces/http/handler"
	"github.com/fieldops/backend/internal/interfaces/http/middleware"
	"github.com/fieldops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/fieldops/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			FieldOps Backend API
//	@version		1.0
//	@description	Multi-tenant field-service management: customers, locations, services, appointments, work orders, payments and notifications.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Telemetry first so the logger can tee into the OTLP log pipeline
	bootLog, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry, cfg.App.Env, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	if core := providers.ZapCore(cfg.Telemetry.ServiceName, zap.InfoLevel); core != nil {
		logCfg.Extra = append(logCfg.Extra, core)
	}
	log, err := logger.New(logCfg)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FieldOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	meter := providers.Meter("fieldops")
	if _, err := telemetry.RegisterPoolMetrics(meter, sqlDB); err != nil {
		log.Warn("Failed to register pool metrics", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	workOrderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Event bus: notifications and business metrics react to domain events
	eventBus := event.NewInMemoryEventBus(log)
	notificationEvents := notificationapp.NewEventHandler(notificationRepo, customerRepo, "", log)
	eventBus.Subscribe(notificationEvents, notificationEvents.EventTypes()...)
	if businessMetrics, err := telemetry.NewBusinessMetrics(meter); err != nil {
		log.Warn("Business metrics disabled", zap.Error(err))
	} else {
		eventBus.Subscribe(businessMetrics, businessMetrics.EventTypes()...)
	}
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	objectStorage := newObjectStorage(cfg, log)

	limits := query.Limits{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}

	// Application services
	customerService := customerapp.NewCustomerService(customerRepo)
	customerService.SetLimits(limits)
	locationService := customerapp.NewLocationService(locationRepo, customerRepo)
	locationService.SetLimits(limits)
	serviceService := catalogapp.NewServiceService(serviceRepo)
	serviceService.SetLimits(limits)

	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo, customerRepo, locationRepo, serviceRepo)
	appointmentService.SetEventPublisher(eventBus)
	appointmentService.SetLimits(limits)

	workOrderService := workorderapp.NewWorkOrderService(workorderapp.Repositories{
		WorkOrders:   workOrderRepo,
		Customers:    customerRepo,
		Locations:    locationRepo,
		Appointments: appointmentRepo,
		Services:     serviceRepo,
		Payments:     paymentRepo,
	})
	workOrderService.SetEventPublisher(eventBus)
	workOrderService.SetLimits(limits)

	attachmentService := workorderapp.NewAttachmentService(attachmentRepo, workOrderRepo, objectStorage)
	attachmentConfig := workorderapp.DefaultAttachmentConfig()
	if cfg.Storage.PresignExpiration > 0 {
		attachmentConfig.UploadURLExpiry = cfg.Storage.PresignExpiration
		attachmentConfig.DownloadURLExpiry = cfg.Storage.PresignExpiration
	}
	attachmentService.SetConfig(attachmentConfig)
	attachmentService.SetLimits(limits)

	paymentService := billingapp.NewPaymentService(paymentRepo, workOrderRepo)
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetLimits(limits)

	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		factory := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.Idempotency.AllowInMemory),
		)
		idempotencyStore, err = factory.CreateStore(context.Background())
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		defer func() {
			_ = idempotencyStore.Close()
		}()
		paymentService.SetIdempotencyStore(idempotencyStore, shared.IdempotencyConfig{
			TTL:     cfg.Idempotency.TTL,
			LockTTL: cfg.Idempotency.LockTTL,
			Enabled: true,
		})
	}

	notificationService := notificationapp.NewNotificationService(notificationRepo)
	notificationService.SetLimits(limits)

	stopReminders := func(context.Context) {}
	if cfg.Reminder.Enabled {
		reminderService := schedulingapp.NewReminderService(appointmentRepo, appointmentRepo, cfg.Reminder.Lead)
		reminderService.SetEventPublisher(eventBus)
		stopReminders = startReminders(cfg.Reminder, reminderService, log)
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.Database.DBName),
	)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		httpMetrics.Middleware(),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	healthHandler := handler.NewHealthHandler(cfg.App.Name, version, map[string]handler.Pinger{
		"database": handler.PingFunc(sqlDB.PingContext),
	})
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/metrics", httpMetrics.Handler())

	jwtService := auth.NewJWTService(cfg.JWT)
	swaggerAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	apiMiddleware := []gin.HandlerFunc{
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			AllowAnonymous: cfg.Tenant.AllowHeader,
			Logger:         log,
		}),
		middleware.TenantMiddlewareWithConfig(middleware.TenantMiddlewareConfig{
			HeaderEnabled: cfg.Tenant.AllowHeader,
			Logger:        log,
		}),
		middleware.TracingAttributeInjector(),
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
	}

	paymentHandler := handler.NewPaymentHandler(paymentService).
		RequireIdempotencyKey(cfg.Idempotency.Enabled && cfg.Idempotency.RequireForWrites)

	router.NewRouter(engine, router.WithMiddleware(apiMiddleware...)).
		Register(router.APIRoutes(router.Handlers{
			Customer:     handler.NewCustomerHandler(customerService),
			Location:     handler.NewLocationHandler(locationService),
			Service:      handler.NewServiceHandler(serviceService),
			Appointment:  handler.NewAppointmentHandler(appointmentService),
			WorkOrder:    handler.NewWorkOrderHandler(workOrderService),
			Attachment:   handler.NewAttachmentHandler(attachmentService),
			Payment:      paymentHandler,
			Notification: handler.NewNotificationHandler(notificationService),
		})...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopReminders(ctx)
	if err := eventBus.Stop(ctx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// startReminders runs the reminder sweep and returns its shutdown function
func startReminders(cfg config.ReminderConfig, reminders *schedulingapp.ReminderService, log *zap.Logger) func(context.Context) {
	sched, err := scheduler.NewScheduler(scheduler.SchedulerConfig{
		MaxConcurrentJobs: cfg.Workers,
		QueueSize:         cfg.BatchSize * 2,
		JobTimeout:        cfg.JobTimeout,
		RetryAttempts:     cfg.RetryAttempts,
		RetryDelay:        cfg.RetryDelay,
	}, scheduler.NewReminderExecutor(reminders), log)
	if err != nil {
		log.Fatal("Invalid reminder configuration", zap.Error(err))
	}
	trigger := scheduler.NewReminderTrigger(scheduler.TriggerConfig{
		CheckInterval: cfg.CheckInterval,
		BatchSize:     cfg.BatchSize,
	}, sched, reminders, log)

	if err := sched.Start(context.Background()); err != nil {
		log.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}
	if err := trigger.Start(context.Background()); err != nil {
		log.Fatal("Failed to start reminder trigger", zap.Error(err))
	}
	log.Info("Appointment reminders enabled", zap.Duration("lead", reminders.Lead()))

	return func(ctx context.Context) {
		if err := trigger.Stop(ctx); err != nil {
			log.Warn("Reminder trigger did not stop", zap.Error(err))
		}
		if err := sched.Stop(ctx); err != nil {
			log.Warn("Reminder scheduler did not stop", zap.Error(err))
		}
	}
}

// newObjectStorage connects to S3 when storage is enabled. Otherwise, or
// outside production when the bucket is unreachable, attachments use the
// in-process stub.
func newObjectStorage(cfg *config.Config, log *zap.Logger) workorderapp.ObjectStorage {
	if !cfg.Storage.Enabled {
		log.Info("Object storage disabled, using stub storage")
		return storage.NewStubObjectStorage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err == nil {
		err = s3Storage.EnsureBucket(ctx)
	}
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		log.Warn("Object storage unavailable, using stub storage", zap.Error(err))
		return storage.NewStubObjectStorage()
	}

	log.Info("Object storage ready", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage
}
