package query

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	catalogrepo "github.com/stockfy/platform/internal/catalog/repository"
	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/internal/inventory/sku"
	"github.com/stockfy/platform/pkg/database"
)

// SuggestSKUQuery represents the query to preview the next free SKU
type SuggestSKUQuery struct {
	TenantID   string
	ProductID  string
	Attributes []domain.Attribute
}

// SuggestSKUHandler previews the SKU the allocator would assign
type SuggestSKUHandler struct {
	db        *gorm.DB
	skuPrefix string
}

// NewSuggestSKUHandler creates a new suggest SKU handler
func NewSuggestSKUHandler(db *gorm.DB, skuPrefix string) *SuggestSKUHandler {
	return &SuggestSKUHandler{db: db, skuPrefix: skuPrefix}
}

// Handle returns the first free candidate without persisting anything.
// Unchanged tenant state yields the same candidate on every call. An empty
// string means the product does not exist under the tenant.
func (h *SuggestSKUHandler) Handle(ctx context.Context, q SuggestSKUQuery) (string, error) {
	if q.ProductID == "" {
		return "", fmt.Errorf("product id is required")
	}

	var candidate string
	err := database.WithTenant(ctx, h.db, q.TenantID, func(tx *gorm.DB) error {
		products := catalogrepo.NewGormProductRepository(tx)
		variants := repository.NewGormVariantRepository(tx)

		product, err := products.FindByID(q.TenantID, q.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil {
			return nil
		}

		values := make([]string, 0, len(q.Attributes))
		for _, attr := range q.Attributes {
			values = append(values, attr.Value)
		}

		alloc := sku.NewAllocator(h.skuPrefix, variants)
		candidate, err = alloc.Generate(q.TenantID, product.Name, values)
		return err
	})
	return candidate, err
}
