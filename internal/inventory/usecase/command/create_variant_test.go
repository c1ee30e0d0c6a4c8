package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfy/platform/internal/inventory/domain"
)

func TestCreateVariantAllocatesSKU(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID)

	handler := NewCreateVariantHandler(db, "STK")
	variant, entries, err := handler.Handle(context.Background(), CreateVariantCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		ProductID: product.ID,
		Attributes: []domain.Attribute{
			{Name: "Cor", Value: "Azul"},
			{Name: "Tamanho", Value: "Grande"},
		},
		Stock:    10,
		MinStock: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, variant)

	assert.Equal(t, "STK-CAMISA-AZUL-GRAN-001", variant.SKU)
	assert.Equal(t, 10, variant.Stock)
	assert.False(t, variant.IsDefault)

	require.Len(t, entries, 1)
	assert.Equal(t, "variant.created", entries[0].Action)
}

func TestCreateVariantAdvancesSuffix(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID)
	seedVariant(t, db, tenantID, product.ID, "STK-CAMISA-AZUL-001", 1, 0)

	handler := NewCreateVariantHandler(db, "STK")
	variant, _, err := handler.Handle(context.Background(), CreateVariantCommand{
		TenantID:   tenantID,
		UserID:     "user-1",
		ProductID:  product.ID,
		Attributes: []domain.Attribute{{Name: "Cor", Value: "Azul"}},
	})
	require.NoError(t, err)
	require.NotNil(t, variant)
	assert.Equal(t, "STK-CAMISA-AZUL-002", variant.SKU)
}

func TestCreateVariantCustomSKUCollision(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID)
	seedVariant(t, db, tenantID, product.ID, "MEU-SKU", 1, 0)

	handler := NewCreateVariantHandler(db, "STK")
	variant, entries, err := handler.Handle(context.Background(), CreateVariantCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		ProductID: product.ID,
		SKU:       "MEU-SKU",
	})
	require.ErrorIs(t, err, domain.ErrSKUAlreadyExists)
	assert.Nil(t, variant)
	assert.Empty(t, entries)
}

func TestCreateVariantSameSKUAcrossTenants(t *testing.T) {
	db := newTestDB(t)
	tenantA := "11111111-1111-1111-1111-111111111111"
	tenantB := "22222222-2222-2222-2222-222222222222"
	productA := seedProduct(t, db, tenantA)
	productB := seedProduct(t, db, tenantB)
	seedVariant(t, db, tenantA, productA.ID, "MEU-SKU", 1, 0)

	// SKU uniqueness is per tenant, so tenant B may reuse the string
	handler := NewCreateVariantHandler(db, "STK")
	variant, _, err := handler.Handle(context.Background(), CreateVariantCommand{
		TenantID:  tenantB,
		UserID:    "user-2",
		ProductID: productB.ID,
		SKU:       "MEU-SKU",
	})
	require.NoError(t, err)
	require.NotNil(t, variant)
	assert.Equal(t, "MEU-SKU", variant.SKU)
	assert.Equal(t, tenantB, variant.TenantID)
}

func TestCreateVariantUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	handler := NewCreateVariantHandler(db, "STK")
	variant, entries, err := handler.Handle(context.Background(), CreateVariantCommand{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		UserID:    "user-1",
		ProductID: "33333333-3333-3333-3333-333333333333",
	})
	require.NoError(t, err)
	assert.Nil(t, variant)
	assert.Empty(t, entries)
}
