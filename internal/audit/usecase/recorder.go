package usecase

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/kafka"
	"github.com/stockfy/platform/pkg/logger"
)

// Recorder persists audit entries after the business transaction has
// committed. Recording failures are logged, never propagated back to
// the caller; the mutation already happened.
type Recorder interface {
	Record(ctx context.Context, entries []domain.Entry)
}

// DBRecorder writes entries straight to the audit_logs table
type DBRecorder struct {
	repo domain.AuditRepository
}

// NewDBRecorder creates a database-backed recorder
func NewDBRecorder(repo domain.AuditRepository) *DBRecorder {
	return &DBRecorder{repo: repo}
}

// Record persists each entry as an audit log row
func (r *DBRecorder) Record(ctx context.Context, entries []domain.Entry) {
	for _, entry := range entries {
		log := &domain.AuditLog{
			TenantID: entry.TenantID,
			UserID:   entry.UserID,
			Action:   entry.Action,
			Entity:   entry.Entity,
			EntityID: entry.EntityID,
		}
		if len(entry.Metadata) > 0 {
			payload, err := json.Marshal(entry.Metadata)
			if err != nil {
				logger.Error(ctx).Err(err).
					Str("action", entry.Action).
					Msg("Failed to marshal audit metadata")
				continue
			}
			log.Metadata = datatypes.JSON(payload)
		}
		if err := r.repo.Create(log); err != nil {
			logger.Error(ctx).Err(err).
				Str("tenant_id", entry.TenantID).
				Str("action", entry.Action).
				Msg("Failed to record audit entry")
		}
	}
}

// KafkaRecorder ships entries to the audit topic for the audit worker
// to persist
type KafkaRecorder struct {
	publisher *kafka.Publisher
}

// NewKafkaRecorder creates a Kafka-backed recorder
func NewKafkaRecorder(publisher *kafka.Publisher) *KafkaRecorder {
	return &KafkaRecorder{publisher: publisher}
}

// Record publishes each entry as an audit event
func (r *KafkaRecorder) Record(ctx context.Context, entries []domain.Entry) {
	for _, entry := range entries {
		event := kafka.AuditRecordedEvent{
			TenantID:  entry.TenantID,
			UserID:    entry.UserID,
			Action:    entry.Action,
			Entity:    entry.Entity,
			EntityID:  entry.EntityID,
			Metadata:  entry.Metadata,
			Timestamp: time.Now(),
		}
		if err := r.publisher.PublishAuditRecorded(ctx, event); err != nil {
			logger.Error(ctx).Err(err).
				Str("tenant_id", entry.TenantID).
				Str("action", entry.Action).
				Msg("Failed to publish audit entry")
		}
	}
}

// NopRecorder drops entries. Used when no audit sink is configured.
type NopRecorder struct{}

// Record discards the entries
func (NopRecorder) Record(context.Context, []domain.Entry) {}
