package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/gym/backend/docs"
	appcontract "github.com/gym/backend/internal/application/contract"
	appfinance "github.com/gym/backend/internal/application/finance"
	"github.com/gym/backend/internal/application/membership"
	apptracking "github.com/gym/backend/internal/application/tracking"
	"github.com/gym/backend/internal/infrastructure/cache"
	"github.com/gym/backend/internal/infrastructure/config"
	"github.com/gym/backend/internal/infrastructure/event"
	"github.com/gym/backend/internal/infrastructure/logger"
	"github.com/gym/backend/internal/infrastructure/migration"
	"github.com/gym/backend/internal/infrastructure/persistence"
	"github.com/gym/backend/internal/infrastructure/scheduler"
	"github.com/gym/backend/internal/infrastructure/telemetry"
	"github.com/gym/backend/internal/interfaces/http/handler"
	"github.com/gym/backend/internal/interfaces/http/middleware"
	"github.com/gym/backend/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceVersion = "1.0.0"

//	@title			Gym Backend API
//	@version		1.0
//	@description	Gym membership backend: clients, plans, contract lifecycle, tracking and finance.

//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry: logs first so every later component logs through the bridge
	otlp := telemetry.OTLPTarget{
		Endpoint:       cfg.Telemetry.CollectorEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: serviceVersion,
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		OTLPTarget: otlp,
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.InfoLevel)

	log.Info("Starting gym backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		OTLPTarget:    otlp,
		Enabled:       cfg.Telemetry.Enabled,
		SamplingRatio: cfg.Telemetry.SamplingRatio,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfilesEnabled {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		OTLPTarget:     otlp,
		Enabled:        cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		ExportInterval: cfg.Telemetry.MetricsExportInterval,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	contractMetrics, err := telemetry.NewContractMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to register contract metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := prepareSchema(db, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     dbSystemName(cfg.Database.Driver),
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	contractRepo := persistence.NewGormContractRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	movementRepo := persistence.NewGormFinancialMovementRepository(db.DB)
	trackingRepo := persistence.NewGormTrackingRecordRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	compensator := appcontract.NewCompensationEngine(scope, trackingRepo, log)
	contractService := appcontract.NewContractService(
		scope, contractRepo, clientRepo, planRepo, compensator,
		appcontract.ServiceConfig{
			CompensationTimeout: cfg.Contract.CompensationTimeout,
			IncomeCategory:      cfg.Contract.IncomeCategory,
			RenewalCategory:     cfg.Contract.RenewalCategory,
		},
		log,
	)
	expirationService := appcontract.NewExpirationService(scope, contractRepo, cfg.Contract.ExpirySweepBatch, log)
	clientService := membership.NewClientService(clientRepo, contractRepo, compensator, log)
	planService := membership.NewPlanService(planRepo, log)
	trackingService := apptracking.NewService(trackingRepo, clientRepo, contractRepo, log)
	financeService := appfinance.NewService(movementRepo, log)

	// Domain events are published after commit; handlers never fail an operation
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	eventBus.Subscribe(event.NewMetricsHandler(contractMetrics))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	contractService.SetEventPublisher(eventBus)
	expirationService.SetEventPublisher(eventBus)

	// Idempotency keys for contract create and renew
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Expiry sweep
	expiryScheduler := scheduler.NewContractExpiryScheduler(expirationService, log, scheduler.ContractExpirySchedulerConfig{
		Enabled:    cfg.Contract.ExpirySweepEnabled,
		Interval:   cfg.Contract.ExpirySweepInterval,
		RunTimeout: cfg.Contract.ExpirySweepTimeout,
		RunOnStart: true,
	})
	expiryScheduler.SetRecorder(contractMetrics)
	if err := expiryScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start contract expiry scheduler", zap.Error(err))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanAttributes(),
		middleware.HTTPMetrics(meterProvider),
		middleware.Profiling(middleware.ProfilingConfig{
			Enabled:   profiler.IsEnabled(),
			SkipPaths: middleware.DefaultProfilingConfig().SkipPaths,
		}),
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, serviceVersion)
	systemHandler.AddCheck("database", func(ctx context.Context) error {
		return db.DB.WithContext(ctx).Exec("SELECT 1").Error
	})
	engine.GET("/health", systemHandler.Health)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  idempotencyStore,
		TTL:    cfg.Contract.IdempotencyTTL,
		Logger: log,
	})
	routes := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.APIGroups(router.Handlers{
			Contract: handler.NewContractHandler(contractService),
			Client:   handler.NewClientHandler(clientService),
			Plan:     handler.NewPlanHandler(planService),
			Tracking: handler.NewTrackingHandler(trackingService),
			Finance:  handler.NewFinanceHandler(financeService),
			System:   systemHandler,
		}, idempotency)...).
		Setup()
	log.Info("HTTP routes registered", zap.Int("count", len(routes)))

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := expiryScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping contract expiry scheduler", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// prepareSchema brings the schema up to date: SQL migrations on postgres,
// model auto-migration on sqlite.
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver == config.DriverSQLite {
		return db.AutoMigrate()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	migrator, err := migration.New(sqlDB, "", log)
	if err != nil {
		return err
	}
	// closing the migrator would close sqlDB, which the server still uses
	return migrator.Up()
}

func dbSystemName(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
