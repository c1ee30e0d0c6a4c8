package query

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
)

// ListVariantsQuery represents the query to list variants
type ListVariantsQuery struct {
	TenantID  string
	ProductID string
}

// ListVariantsHandler lists the tenant's variants
type ListVariantsHandler struct {
	db *gorm.DB
}

// NewListVariantsHandler creates a new list variants handler
func NewListVariantsHandler(db *gorm.DB) *ListVariantsHandler {
	return &ListVariantsHandler{db: db}
}

// Handle returns the variants, newest first, optionally filtered by product
func (h *ListVariantsHandler) Handle(ctx context.Context, q ListVariantsQuery) ([]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	err := database.WithTenant(ctx, h.db, q.TenantID, func(tx *gorm.DB) error {
		var err error
		variants, err = repository.NewGormVariantRepository(tx).FindAll(q.TenantID, q.ProductID)
		return err
	})
	return variants, err
}

// ListMovementsQuery represents the query to page through the ledger
type ListMovementsQuery struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListMovementsHandler pages through the stock ledger
type ListMovementsHandler struct {
	db *gorm.DB
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(db *gorm.DB) *ListMovementsHandler {
	return &ListMovementsHandler{db: db}
}

// Handle returns ledger entries, newest first
func (h *ListMovementsHandler) Handle(ctx context.Context, q ListMovementsQuery) ([]domain.StockMovement, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var movements []domain.StockMovement
	err := database.WithTenant(ctx, h.db, q.TenantID, func(tx *gorm.DB) error {
		var err error
		movements, err = repository.NewGormMovementRepository(tx).FindAll(q.TenantID, q.Limit, q.Offset)
		return err
	})
	return movements, err
}
