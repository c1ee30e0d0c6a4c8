package query

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
	invdomain "github.com/stockfy/platform/internal/inventory/domain"
	invrepo "github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
)

// ProductDetails bundles a product with its variants
type ProductDetails struct {
	domain.Product
	Variants []invdomain.ProductVariant `json:"variants"`
}

// GetProductQuery represents the query to fetch one product
type GetProductQuery struct {
	TenantID  string
	ProductID string
}

// GetProductHandler fetches a product with its variants
type GetProductHandler struct {
	db *gorm.DB
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(db *gorm.DB) *GetProductHandler {
	return &GetProductHandler{db: db}
}

// Handle returns the product and its variants, or nil when the product
// does not exist under the tenant
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*ProductDetails, error) {
	if q.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	var details *ProductDetails
	err := database.WithTenant(ctx, h.db, q.TenantID, func(tx *gorm.DB) error {
		product, err := repository.NewGormProductRepository(tx).FindByID(q.TenantID, q.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return nil
		}

		variants, err := invrepo.NewGormVariantRepository(tx).FindByProduct(q.TenantID, product.ID)
		if err != nil {
			return err
		}

		details = &ProductDetails{Product: *product, Variants: variants}
		return nil
	})
	return details, err
}
