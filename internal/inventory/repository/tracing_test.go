package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/inventory/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.ProductVariant{}, &domain.StockMovement{}))
	return db
}

func TestTracedVariantRepositoryDelegates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tenantID := "11111111-1111-1111-1111-111111111111"

	seeded := &domain.ProductVariant{
		TenantID:  tenantID,
		ProductID: "22222222-2222-2222-2222-222222222222",
		SKU:       "STK-CAMISA-001",
		Stock:     5,
	}
	require.NoError(t, db.Create(seeded).Error)

	variants := NewGormVariantRepositoryWithTracing(db)

	found, err := variants.FindByIDWithContext(ctx, tenantID, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "STK-CAMISA-001", found.SKU)

	bySKU, err := variants.FindBySKUWithContext(ctx, tenantID, "STK-CAMISA-001")
	require.NoError(t, err)
	require.NotNil(t, bySKU)
	assert.Equal(t, seeded.ID, bySKU.ID)

	missing, err := variants.FindBySKUWithContext(ctx, tenantID, "STK-NADA-001")
	require.NoError(t, err)
	assert.Nil(t, missing)

	otherTenant, err := variants.FindByIDWithContext(ctx, "99999999-9999-9999-9999-999999999999", seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, otherTenant)

	require.NoError(t, variants.UpdateStockWithContext(ctx, tenantID, seeded.ID, 8))
	updated, err := variants.FindByIDWithContext(ctx, tenantID, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Stock)
}

func TestTracedMovementRepositoryDelegates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tenantID := "11111111-1111-1111-1111-111111111111"

	movements := NewGormMovementRepositoryWithTracing(db)

	m := &domain.StockMovement{
		TenantID:  tenantID,
		VariantID: "33333333-3333-3333-3333-333333333333",
		Type:      domain.MovementIn,
		Quantity:  3,
	}
	require.NoError(t, movements.CreateWithContext(ctx, m))
	assert.NotEmpty(t, m.ID)

	stored, err := movements.FindAll(tenantID, 10, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, m.ID, stored[0].ID)
}
