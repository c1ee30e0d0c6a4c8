package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invdomain "github.com/stockfy/platform/internal/inventory/domain"
)

func TestCreateProductCreatesDefaultVariant(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	category := seedCategory(t, db)

	handler := NewCreateProductHandler(db, "STK")
	product, entries, err := handler.Handle(context.Background(), CreateProductCommand{
		TenantID:   tenantID,
		UserID:     "user-1",
		CategoryID: category.ID,
		Name:       "Tenis Runner",
		UnitPrice:  199.9,
		Stock:      12,
		MinStock:   3,
	})
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, tenantID, product.TenantID)

	var variants []invdomain.ProductVariant
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&variants).Error)
	require.Len(t, variants, 1)
	assert.True(t, variants[0].IsDefault)
	assert.Equal(t, "STK-TENISR-001", variants[0].SKU)
	assert.Equal(t, 12, variants[0].Stock)
	assert.Equal(t, 3, variants[0].MinStock)

	require.Len(t, entries, 1)
	assert.Equal(t, "product.created", entries[0].Action)
	assert.Equal(t, variants[0].SKU, entries[0].Metadata["default_sku"])
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := newTestDB(t)

	handler := NewCreateProductHandler(db, "STK")
	product, entries, err := handler.Handle(context.Background(), CreateProductCommand{
		TenantID:   "11111111-1111-1111-1111-111111111111",
		UserID:     "user-1",
		CategoryID: "99999999-9999-9999-9999-999999999999",
		Name:       "Tenis Runner",
	})
	require.Error(t, err)
	assert.Nil(t, product)
	assert.Empty(t, entries)
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	handler := NewCreateProductHandler(db, "STK")

	_, _, err := handler.Handle(context.Background(), CreateProductCommand{
		TenantID:   "11111111-1111-1111-1111-111111111111",
		CategoryID: "x",
	})
	require.Error(t, err)

	_, _, err = handler.Handle(context.Background(), CreateProductCommand{
		TenantID:   "11111111-1111-1111-1111-111111111111",
		CategoryID: "x",
		Name:       "Tenis",
		UnitPrice:  -1,
	})
	require.Error(t, err)
}

func TestUpdateProductForwardsStockToDefaultVariant(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	category := seedCategory(t, db)

	createHandler := NewCreateProductHandler(db, "STK")
	product, _, err := createHandler.Handle(context.Background(), CreateProductCommand{
		TenantID:   tenantID,
		UserID:     "user-1",
		CategoryID: category.ID,
		Name:       "Tenis Runner",
		Stock:      12,
		MinStock:   3,
	})
	require.NoError(t, err)

	stock := 20
	minStock := 5
	name := "Tenis Runner Pro"
	updateHandler := NewUpdateProductHandler(db)
	updated, entries, err := updateHandler.Handle(context.Background(), UpdateProductCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		ProductID: product.ID,
		Name:      &name,
		Stock:     &stock,
		MinStock:  &minStock,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Tenis Runner Pro", updated.Name)

	var variant invdomain.ProductVariant
	require.NoError(t, db.First(&variant, "product_id = ? AND is_default = ?", product.ID, true).Error)
	assert.Equal(t, 20, variant.Stock)
	assert.Equal(t, 5, variant.MinStock)

	require.Len(t, entries, 1)
	assert.Equal(t, "product.updated", entries[0].Action)
}

func TestUpdateProductUnknown(t *testing.T) {
	db := newTestDB(t)

	handler := NewUpdateProductHandler(db)
	updated, entries, err := handler.Handle(context.Background(), UpdateProductCommand{
		TenantID:  "11111111-1111-1111-1111-111111111111",
		UserID:    "user-1",
		ProductID: "33333333-3333-3333-3333-333333333333",
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, entries)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	category := seedCategory(t, db)

	createHandler := NewCreateProductHandler(db, "STK")
	product, _, err := createHandler.Handle(context.Background(), CreateProductCommand{
		TenantID:   tenantID,
		UserID:     "user-1",
		CategoryID: category.ID,
		Name:       "Tenis Runner",
	})
	require.NoError(t, err)

	deleteHandler := NewDeleteProductHandler(db)
	deleted, entries, err := deleteHandler.Handle(context.Background(), DeleteProductCommand{
		TenantID:  tenantID,
		UserID:    "user-1",
		ProductID: product.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, deleted)

	require.Len(t, entries, 1)
	assert.Equal(t, "product.deleted", entries[0].Action)

	var count int64
	require.NoError(t, db.Table("products").Where("id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}
