package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attribute is a name/value pair describing a sellable configuration,
// e.g. {Cor, Azul} or {Tamanho, Grande}
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductVariant represents a sellable configuration of a product.
// The SKU is unique within a tenant, not globally: two tenants may use
// the identical SKU string.
type ProductVariant struct {
	ID         string                         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID   string                         `json:"tenant_id" gorm:"type:uuid;not null;index:idx_variants_tenant_sku,unique,priority:1"`
	ProductID  string                         `json:"product_id" gorm:"type:uuid;not null;index"`
	SKU        string                         `json:"sku" gorm:"size:32;not null;index:idx_variants_tenant_sku,unique,priority:2"`
	Stock      int                            `json:"stock" gorm:"not null;default:0"`
	MinStock   int                            `json:"min_stock" gorm:"not null;default:0"`
	Attributes datatypes.JSONSlice[Attribute] `json:"attributes"`
	IsDefault  bool                           `json:"is_default" gorm:"not null;default:false"`
	CreatedAt  time.Time                      `json:"created_at"`
	UpdatedAt  time.Time                      `json:"updated_at"`
}

// TableName specifies the table name
func (ProductVariant) TableName() string {
	return "product_variants"
}

// BeforeCreate assigns the variant ID
func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// IsLowStock reports whether stock fell to or below the restock threshold
func (v *ProductVariant) IsLowStock() bool {
	return v.Stock <= v.MinStock
}

// AttributeValues returns the attribute values in input order, used by
// SKU generation
func (v *ProductVariant) AttributeValues() []string {
	values := make([]string, 0, len(v.Attributes))
	for _, attr := range v.Attributes {
		values = append(values, attr.Value)
	}
	return values
}

// VariantRepository defines the contract for variant data access.
// All methods are tenant-explicit; lookup methods return (nil, nil)
// when no row exists under the tenant.
type VariantRepository interface {
	Create(variant *ProductVariant) error
	FindByID(tenantID, id string) (*ProductVariant, error)
	FindBySKU(tenantID, sku string) (*ProductVariant, error)
	Exists(tenantID, sku string) (bool, error)
	FindAll(tenantID, productID string) ([]ProductVariant, error)
	FindByProduct(tenantID, productID string) ([]ProductVariant, error)
	UpdateFields(tenantID, id string, fields map[string]interface{}) error
	UpdateStock(tenantID, id string, stock int) error
	Delete(tenantID, id string) error
	SumStock(tenantID string) (int64, error)
	CountLowStock(tenantID string) (int64, error)
	StockByCategory(tenantID string) ([]CategoryStock, error)
	InventoryValue(tenantID string) (float64, error)
}

// CategoryStock aggregates variant stock per category name
type CategoryStock struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}
