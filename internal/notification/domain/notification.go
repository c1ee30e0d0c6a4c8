package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification kinds
const (
	KindLowStock     = "LOW_STOCK"
	KindMovement     = "MOVEMENT"
	KindSubscription = "SUBSCRIPTION"
)

// Notification is an in-app message shown to all members of a tenant
type Notification struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Kind      string    `json:"kind" gorm:"size:30;not null"`
	Title     string    `json:"title" gorm:"size:120;not null"`
	Message   string    `json:"message" gorm:"size:500"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns the notification ID
func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NotificationRepository defines the contract for notification access
type NotificationRepository interface {
	Create(notification *Notification) error
	FindAll(tenantID string, limit, offset int) ([]Notification, error)
	CountUnread(tenantID string) (int64, error)
	MarkAllRead(tenantID string) error
}
