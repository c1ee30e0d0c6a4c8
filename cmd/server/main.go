package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/stockfy/platform/internal/api"
	"github.com/stockfy/platform/internal/app"
	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	catalogdomain "github.com/stockfy/platform/internal/catalog/domain"
	inventorydomain "github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/middleware"
	notificationdomain "github.com/stockfy/platform/internal/notification/domain"
	tenantdomain "github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/kafka"
	"github.com/stockfy/platform/pkg/config"
	"github.com/stockfy/platform/pkg/database"
	"github.com/stockfy/platform/pkg/logger"
	"github.com/stockfy/platform/pkg/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting API server")

	// Tracing
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Database
	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&tenantdomain.Tenant{},
		&tenantdomain.Membership{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&inventorydomain.ProductVariant{},
		&inventorydomain.StockMovement{},
		&auditdomain.AuditLog{},
		&notificationdomain.Notification{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis (optional)
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// Audit recorder: Kafka when brokers are configured, direct DB
	// writes otherwise
	var recorder auditusecase.Recorder
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
		recorder = auditusecase.NewKafkaRecorder(publisher)
	} else {
		recorder = auditusecase.NewDBRecorder(app.ProvideAuditRepository(db))
	}

	application, err := app.InitializeApp(db, cache, cfg, recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	// Router
	router := mux.NewRouter()

	metrics := middleware.NewHTTPMetrics("stockfy_api")
	var limiter *middleware.RateLimiter
	if cache != nil {
		limiter = middleware.NewRateLimiter(cache, app.ProvideTokenManager(cfg), 300, time.Minute)
	}
	mwConfig := middleware.DefaultConfig(metrics, limiter)
	middleware.Register(router, mwConfig)

	application.Inventory.RegisterRoutes(router)
	application.Catalog.RegisterRoutes(router)
	application.Tenants.RegisterRoutes(router)
	application.Notifications.RegisterRoutes(router)
	application.Audit.RegisterRoutes(router)
	application.Reports.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.Ping(); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, api.CodeInternal, "Database unavailable")
			return
		}
		api.RespondJSON(w, http.StatusOK, api.Response{
			Success: true,
			Message: "API server is healthy",
		})
	}).Methods("GET")

	handler := middleware.SetupCORS(mwConfig)(router)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
