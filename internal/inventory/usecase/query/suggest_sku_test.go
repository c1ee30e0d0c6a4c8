package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfy/platform/internal/inventory/domain"
)

func TestSuggestSKUPreviewsNextCandidate(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID, "Camisa")
	seedVariant(t, db, tenantID, product.ID, "STK-CAMISA-AZUL-001", 5)

	handler := NewSuggestSKUHandler(db, "STK")
	candidate, err := handler.Handle(context.Background(), SuggestSKUQuery{
		TenantID:   tenantID,
		ProductID:  product.ID,
		Attributes: []domain.Attribute{{Name: "Cor", Value: "Azul"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "STK-CAMISA-AZUL-002", candidate)
}

func TestSuggestSKUPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	product := seedProduct(t, db, tenantID, "Camisa")

	handler := NewSuggestSKUHandler(db, "STK")
	first, err := handler.Handle(context.Background(), SuggestSKUQuery{
		TenantID:  tenantID,
		ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "STK-CAMISA-001", first)

	second, err := handler.Handle(context.Background(), SuggestSKUQuery{
		TenantID:  tenantID,
		ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&domain.ProductVariant{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSuggestSKUUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	handler := NewSuggestSKUHandler(db, "STK")
	candidate, err := handler.Handle(context.Background(), SuggestSKUQuery{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		ProductID: "99999999-9999-9999-9999-999999999999",
	})
	require.NoError(t, err)
	assert.Empty(t, candidate)
}

func TestListVariantsFiltersByProductAndTenant(t *testing.T) {
	db := newTestDB(t)
	tenantA := "11111111-1111-1111-1111-111111111111"
	tenantB := "22222222-2222-2222-2222-222222222222"
	productA := seedProduct(t, db, tenantA, "Camisa")
	productB := seedProduct(t, db, tenantA, "Tenis")
	seedVariant(t, db, tenantA, productA.ID, "STK-CAMISA-001", 5)
	seedVariant(t, db, tenantA, productB.ID, "STK-TENIS-001", 3)
	seedVariant(t, db, tenantB, productA.ID, "STK-CAMISA-001-B", 9)

	handler := NewListVariantsHandler(db)

	all, err := handler.Handle(context.Background(), ListVariantsQuery{TenantID: tenantA})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := handler.Handle(context.Background(), ListVariantsQuery{TenantID: tenantA, ProductID: productA.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "STK-CAMISA-001", filtered[0].SKU)
}
