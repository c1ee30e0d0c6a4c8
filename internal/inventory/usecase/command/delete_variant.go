package command

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
)

// DeleteVariantCommand represents the command to delete a variant
type DeleteVariantCommand struct {
	TenantID  string
	UserID    string
	VariantID string
}

// DeleteVariantHandler removes a variant
type DeleteVariantHandler struct {
	db *gorm.DB
}

// NewDeleteVariantHandler creates a new delete variant handler
func NewDeleteVariantHandler(db *gorm.DB) *DeleteVariantHandler {
	return &DeleteVariantHandler{db: db}
}

// Handle deletes the variant under the tenant. A variant missing under the
// tenant yields a nil result. Movement rows referencing the variant stay:
// the ledger is immutable.
func (h *DeleteVariantHandler) Handle(ctx context.Context, cmd DeleteVariantCommand) (*domain.ProductVariant, []auditdomain.Entry, error) {
	if cmd.VariantID == "" {
		return nil, nil, fmt.Errorf("variant id is required")
	}

	var deleted *domain.ProductVariant

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		variants := repository.NewGormVariantRepositoryWithTracing(tx)

		current, err := variants.FindByIDWithContext(ctx, cmd.TenantID, cmd.VariantID)
		if err != nil {
			return fmt.Errorf("failed to load variant: %w", err)
		}
		if current == nil {
			return nil
		}

		if err := variants.Delete(cmd.TenantID, current.ID); err != nil {
			return fmt.Errorf("failed to delete variant: %w", err)
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
		Action:   "variant.deleted",
		Entity:   "variant",
		EntityID: deleted.ID,
		Metadata: map[string]interface{}{"sku": deleted.SKU},
	}}

	return deleted, entries, nil
}
