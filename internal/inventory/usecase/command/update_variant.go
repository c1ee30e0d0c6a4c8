package command

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
)

// UpdateVariantCommand represents a partial variant update. Nil fields
// keep their prior values.
type UpdateVariantCommand struct {
	TenantID         string
	UserID           string
	VariantID        string
	SKU              *string
	Stock            *int
	MinStock         *int
	Attributes       []domain.Attribute
	ConfirmSKUChange bool
}

// UpdateVariantHandler applies partial updates to a variant
type UpdateVariantHandler struct {
	db *gorm.DB
}

// NewUpdateVariantHandler creates a new update variant handler
func NewUpdateVariantHandler(db *gorm.DB) *UpdateVariantHandler {
	return &UpdateVariantHandler{db: db}
}

// Handle updates the supplied fields only. Changing the SKU is a two-phase
// operation: without ConfirmSKUChange the command fails with
// domain.ErrSKUConfirmRequired and the stored SKU stays untouched, since a
// silent identifier change would break external barcode and label
// references. A confirmed change still collides against the tenant
// namespace. A variant missing under the tenant yields a nil result.
func (h *UpdateVariantHandler) Handle(ctx context.Context, cmd UpdateVariantCommand) (*domain.ProductVariant, []auditdomain.Entry, error) {
	if cmd.VariantID == "" {
		return nil, nil, fmt.Errorf("variant id is required")
	}
	if cmd.Stock != nil && *cmd.Stock < 0 {
		return nil, nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.MinStock != nil && *cmd.MinStock < 0 {
		return nil, nil, fmt.Errorf("min stock cannot be negative")
	}

	var variant *domain.ProductVariant
	var changedSKU bool

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		variants := repository.NewGormVariantRepositoryWithTracing(tx)

		current, err := variants.FindByIDWithContext(ctx, cmd.TenantID, cmd.VariantID)
		if err != nil {
			return fmt.Errorf("failed to load variant: %w", err)
		}
		if current == nil {
			return nil
		}

		newSKU := ""
		if cmd.SKU != nil {
			newSKU = strings.TrimSpace(*cmd.SKU)
		}

		if newSKU != "" && newSKU != current.SKU {
			if !cmd.ConfirmSKUChange {
				return domain.ErrSKUConfirmRequired
			}
			existing, err := variants.FindBySKUWithContext(ctx, cmd.TenantID, newSKU)
			if err != nil {
				return fmt.Errorf("failed to check sku: %w", err)
			}
			if existing != nil {
				return domain.ErrSKUAlreadyExists
			}
			changedSKU = true
		}

		fields := map[string]interface{}{}
		if changedSKU {
			fields["sku"] = newSKU
		}
		if cmd.Stock != nil {
			fields["stock"] = *cmd.Stock
		}
		if cmd.MinStock != nil {
			fields["min_stock"] = *cmd.MinStock
		}
		if cmd.Attributes != nil {
			fields["attributes"] = datatypes.NewJSONSlice(cmd.Attributes)
		}

		if len(fields) > 0 {
			if err := variants.UpdateFields(cmd.TenantID, current.ID, fields); err != nil {
				return fmt.Errorf("failed to update variant: %w", err)
			}
		}

		variant, err = variants.FindByID(cmd.TenantID, current.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	if variant == nil {
		return nil, nil, nil
	}

	entries := []auditdomain.Entry{{
		TenantID: cmd.TenantID,
		UserID:   cmd.UserID,
		Action:   "variant.updated",
		Entity:   "variant",
		EntityID: variant.ID,
		Metadata: map[string]interface{}{
			"sku":         variant.SKU,
			"sku_changed": changedSKU,
		},
	}}

	return variant, entries, nil
}
