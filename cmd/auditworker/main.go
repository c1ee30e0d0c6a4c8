package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/stockfy/platform/kafka"
	"github.com/stockfy/platform/pkg/config"
	"github.com/stockfy/platform/pkg/database"
	"github.com/stockfy/platform/pkg/logger"
	"github.com/stockfy/platform/pkg/tracing"
)

const consumerGroup = "audit-worker"

func main() {
	cfg := config.Load()

	logger.Init("stockfy-audit-worker", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Strs("brokers", cfg.KafkaBrokers).
		Msg("Starting audit worker")

	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required for the audit worker")
	}

	tp, err := tracing.InitTracer("stockfy-audit-worker")
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

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, consumerGroup, []string{kafka.TopicAuditTrail})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeAuditRecorded, func(ctx context.Context, event kafka.AuditRecordedEvent) error {
		return persistAuditEvent(ctx, db, event)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down audit worker...")
}

// persistAuditEvent writes one audit trail row
func persistAuditEvent(ctx context.Context, db *sql.DB, event kafka.AuditRecordedEvent) error {
	var metadata []byte
	if len(event.Metadata) > 0 {
		payload, err := json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
		metadata = payload
	}

	createdAt := event.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, tenant_id, user_id, action, entity, entity_id, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(),
		event.TenantID,
		event.UserID,
		event.Action,
		event.Entity,
		event.EntityID,
		metadata,
		createdAt,
	)
	return err
}
