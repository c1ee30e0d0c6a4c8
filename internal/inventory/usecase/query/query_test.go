package query

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogdomain "github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/inventory/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&domain.ProductVariant{},
		&domain.StockMovement{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID, name string) *catalogdomain.Product {
	t.Helper()

	category := &catalogdomain.Category{Name: "Roupas " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(category).Error)

	product := &catalogdomain.Product{
		TenantID:   tenantID,
		CategoryID: category.ID,
		Name:       name,
		UnitPrice:  49.9,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedVariant(t *testing.T, db *gorm.DB, tenantID, productID, sku string, stock int) *domain.ProductVariant {
	t.Helper()

	variant := &domain.ProductVariant{
		TenantID:  tenantID,
		ProductID: productID,
		SKU:       sku,
		Stock:     stock,
	}
	require.NoError(t, db.Create(variant).Error)
	return variant
}
