package command

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
	"github.com/stockfy/platform/pkg/database"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	TenantID  string
	UserID    string
	ProductID string
}

// DeleteProductHandler removes a product
type DeleteProductHandler struct {
	db *gorm.DB
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(db *gorm.DB) *DeleteProductHandler {
	return &DeleteProductHandler{db: db}
}

// Handle deletes the product under the tenant. Cascading of variants is a
// schema concern; a product missing under the tenant yields a nil result.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (*domain.Product, []auditdomain.Entry, error) {
	if cmd.ProductID == "" {
		return nil, nil, fmt.Errorf("product id is required")
	}

	var deleted *domain.Product

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		products := repository.NewGormProductRepository(tx)

		current, err := products.FindByID(cmd.TenantID, cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if current == nil {
			return nil
		}

		if err := products.Delete(cmd.TenantID, current.ID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}

		deleted = current
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if deleted == nil {
		return nil, nil, nil
	}

	entries := []auditdomain.Entry{{
		TenantID: cmd.TenantID,
		UserID:   cmd.UserID,
		Action:   "product.deleted",
		Entity:   "product",
		EntityID: deleted.ID,
		Metadata: map[string]interface{}{"name": deleted.Name},
	}}

	return deleted, entries, nil
}
