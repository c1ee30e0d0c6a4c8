package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement direction
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// StockMovement is an immutable ledger entry. Rows are only ever
// inserted; variant stock changes exclusively by applying a movement.
type StockMovement struct {
	ID        string          `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string          `json:"tenant_id" gorm:"type:uuid;not null;index"`
	VariantID string          `json:"variant_id" gorm:"type:uuid;not null;index"`
	Type      string          `json:"type" gorm:"size:3;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Note      string          `json:"note,omitempty" gorm:"size:300"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
	Variant   *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// BeforeCreate assigns the movement ID
func (m *StockMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MovementRepository defines the contract for the stock ledger.
// Movements are append-only; there is no update or delete.
type MovementRepository interface {
	Create(movement *StockMovement) error
	FindAll(tenantID string, limit, offset int) ([]StockMovement, error)
	FindSince(tenantID string, since time.Time) ([]StockMovement, error)
	FindBetween(tenantID string, from, to time.Time) ([]StockMovement, error)
	CountSince(tenantID string, since time.Time) (int64, error)
	Recent(tenantID string, limit int) ([]StockMovement, error)
}
