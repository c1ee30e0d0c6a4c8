package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. Categories are shared across tenants, matching
// the catalog taxonomy being curated centrally.
type Category struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:120;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns the category ID
func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Product belongs to exactly one tenant and one category. Stock lives on
// the product's variants, never on the product itself.
type Product struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID    string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	CategoryID  string    `json:"category_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:2000"`
	UnitPrice   float64   `json:"unit_price" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns the product ID
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id string) (*Category, error)
	FindAll() ([]Category, error)
}

// ProductRepository defines the contract for product data access.
// Lookup methods return (nil, nil) when no row exists under the tenant.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(tenantID, id string) (*Product, error)
	FindAll(tenantID, search string) ([]Product, error)
	UpdateFields(tenantID, id string, fields map[string]interface{}) error
	Delete(tenantID, id string) error
	Count(tenantID string) (int64, error)
}
