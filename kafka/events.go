package kafka

import "time"

// AuditRecordedEvent represents a recorded audit trail entry
type AuditRecordedEvent struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	TenantID  string                 `json:"tenant_id"`
	UserID    string                 `json:"user_id"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Event types
const (
	EventTypeAuditRecorded = "audit.recorded"
)

// Kafka topics
const (
	TopicAuditTrail = "audit-trail"
)
