package query

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
	"github.com/stockfy/platform/pkg/database"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	TenantID string
	Search   string
}

// ListProductsHandler lists the tenant's products
type ListProductsHandler struct {
	db *gorm.DB
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(db *gorm.DB) *ListProductsHandler {
	return &ListProductsHandler{db: db}
}

// Handle returns the products, newest first, optionally filtered by a
// name search
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	var products []domain.Product
	err := database.WithTenant(ctx, h.db, q.TenantID, func(tx *gorm.DB) error {
		var err error
		products, err = repository.NewGormProductRepository(tx).FindAll(q.TenantID, q.Search)
		return err
	})
	return products, err
}
