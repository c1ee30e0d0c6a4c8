package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is a persisted trail record of a mutating operation
type AuditLog struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;index"`
	UserID    string         `json:"user_id" gorm:"type:uuid;not null"`
	Action    string         `json:"action" gorm:"size:120;not null"`
	Entity    string         `json:"entity" gorm:"size:60;not null"`
	EntityID  string         `json:"entity_id" gorm:"size:60"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns the log ID
func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Entry is a pending audit record. Mutating commands return entries
// alongside their result instead of writing the trail themselves; the
// caller dispatches them after the business transaction commits and
// decides what a recording failure means.
type Entry struct {
	TenantID string                 `json:"tenant_id"`
	UserID   string                 `json:"user_id"`
	Action   string                 `json:"action"`
	Entity   string                 `json:"entity"`
	EntityID string                 `json:"entity_id,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// AuditRepository defines the contract for audit trail access
type AuditRepository interface {
	Create(log *AuditLog) error
	FindAll(tenantID string, limit, offset int) ([]AuditLog, error)
}
