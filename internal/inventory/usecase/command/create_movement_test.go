package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfy/platform/internal/inventory/domain"
)

func TestCreateMovementInboundAddsStock(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID)
	variant := seedVariant(t, db, tenantID, product.ID, "STK-CAMISA-001", 5, 2)

	handler := NewCreateMovementHandler(db)
	movement, entries, err := handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		VariantID: variant.ID,
		Type:      domain.MovementIn,
		Quantity:  3,
		Note:      "reposicao",
	})
	require.NoError(t, err)
	require.NotNil(t, movement)

	assert.Equal(t, domain.MovementIn, movement.Type)
	assert.Equal(t, 3, movement.Quantity)
	require.NotNil(t, movement.Variant)
	assert.Equal(t, 8, movement.Variant.Stock)

	var stored domain.ProductVariant
	require.NoError(t, db.First(&stored, "id = ?", variant.ID).Error)
	assert.Equal(t, 8, stored.Stock)

	require.Len(t, entries, 1)
	assert.Equal(t, "stock_movement.created", entries[0].Action)
	assert.Equal(t, tenantID, entries[0].TenantID)
	assert.Equal(t, movement.ID, entries[0].EntityID)
}

func TestCreateMovementOutboundToZero(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID)
	variant := seedVariant(t, db, tenantID, product.ID, "STK-CAMISA-001", 5, 2)

	handler := NewCreateMovementHandler(db)
	movement, _, err := handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		VariantID: variant.ID,
		Type:      domain.MovementOut,
		Quantity:  5,
	})
	require.NoError(t, err)
	require.NotNil(t, movement)

	var stored domain.ProductVariant
	require.NoError(t, db.First(&stored, "id = ?", variant.ID).Error)
	assert.Equal(t, 0, stored.Stock)
}

func TestCreateMovementOutboundBelowZeroFails(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID)
	variant := seedVariant(t, db, tenantID, product.ID, "STK-CAMISA-001", 5, 2)

	handler := NewCreateMovementHandler(db)
	movement, entries, err := handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		VariantID: variant.ID,
		Type:      domain.MovementOut,
		Quantity:  6,
	})
	require.ErrorIs(t, err, domain.ErrStockNegative)
	assert.Nil(t, movement)
	assert.Empty(t, entries)

	// The failed command must leave no trace: stock unchanged, ledger empty
	var stored domain.ProductVariant
	require.NoError(t, db.First(&stored, "id = ?", variant.ID).Error)
	assert.Equal(t, 5, stored.Stock)

	var count int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateMovementUnknownVariant(t *testing.T) {
	db := newTestDB(t)

	handler := NewCreateMovementHandler(db)
	movement, entries, err := handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		UserID:    "user-1",
		VariantID: "22222222-2222-2222-2222-222222222222",
		Type:      domain.MovementIn,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Nil(t, movement)
	assert.Empty(t, entries)
}

func TestCreateMovementIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	tenantA := "11111111-1111-1111-1111-111111111111"
	tenantB := "22222222-2222-2222-2222-222222222222"
	product := seedProduct(t, db, tenantA)
	variant := seedVariant(t, db, tenantA, product.ID, "STK-CAMISA-001", 5, 2)

	handler := NewCreateMovementHandler(db)
	movement, _, err := handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  tenantB,
		UserID:    "user-1",
		VariantID: variant.ID,
		Type:      domain.MovementIn,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Nil(t, movement)

	var stored domain.ProductVariant
	require.NoError(t, db.First(&stored, "id = ?", variant.ID).Error)
	assert.Equal(t, 5, stored.Stock)
}

func TestCreateMovementValidation(t *testing.T) {
	db := newTestDB(t)
	handler := NewCreateMovementHandler(db)

	_, _, err := handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		VariantID: "some-variant",
		Type:      "TRANSFER",
		Quantity:  1,
	})
	require.Error(t, err)

	_, _, err = handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		VariantID: "some-variant",
		Type:      domain.MovementIn,
		Quantity:  0,
	})
	require.Error(t, err)

	_, _, err = handler.Handle(context.Background(), CreateMovementCommand{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		VariantID: "some-variant",
		Type:      domain.MovementOut,
		Quantity:  -2,
	})
	require.Error(t, err)
}
