package command

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
	invrepo "github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
)

// UpdateProductCommand represents a partial product update. Nil fields
// keep their prior values.
type UpdateProductCommand struct {
	TenantID    string
	UserID      string
	ProductID   string
	Name        *string
	Description *string
	CategoryID  *string
	UnitPrice   *float64
	Stock       *int
	MinStock    *int
}

// UpdateProductHandler applies partial updates to a product
type UpdateProductHandler struct {
	db *gorm.DB
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(db *gorm.DB) *UpdateProductHandler {
	return &UpdateProductHandler{db: db}
}

// Handle updates the supplied fields only. Stock and min stock are not
// product fields: they are forwarded to the product's default variant
// (first variant when no default is flagged). A product missing under the
// tenant yields a nil result.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, []auditdomain.Entry, error) {
	if cmd.ProductID == "" {
		return nil, nil, fmt.Errorf("product id is required")
	}
	if cmd.UnitPrice != nil && *cmd.UnitPrice < 0 {
		return nil, nil, fmt.Errorf("unit price cannot be negative")
	}
	if cmd.Stock != nil && *cmd.Stock < 0 {
		return nil, nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.MinStock != nil && *cmd.MinStock < 0 {
		return nil, nil, fmt.Errorf("min stock cannot be negative")
	}

	var product *domain.Product

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		products := repository.NewGormProductRepository(tx)
		variants := invrepo.NewGormVariantRepository(tx)

		current, err := products.FindByID(cmd.TenantID, cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if current == nil {
			return nil
		}

		if cmd.CategoryID != nil {
			categories := repository.NewGormCategoryRepository(tx)
			category, err := categories.FindByID(*cmd.CategoryID)
			if err != nil {
				return fmt.Errorf("failed to load category: %w", err)
			}
			if category == nil {
				return fmt.Errorf("category not found")
			}
		}

		fields := map[string]interface{}{}
		if cmd.Name != nil {
			fields["name"] = *cmd.Name
		}
		if cmd.Description != nil {
			fields["description"] = *cmd.Description
		}
		if cmd.CategoryID != nil {
			fields["category_id"] = *cmd.CategoryID
		}
		if cmd.UnitPrice != nil {
			fields["unit_price"] = *cmd.UnitPrice
		}
		if len(fields) > 0 {
			if err := products.UpdateFields(cmd.TenantID, current.ID, fields); err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		if cmd.Stock != nil || cmd.MinStock != nil {
			productVariants, err := variants.FindByProduct(cmd.TenantID, current.ID)
			if err != nil {
				return fmt.Errorf("failed to load variants: %w", err)
			}
			if len(productVariants) > 0 {
				target := productVariants[0]
				for _, v := range productVariants {
					if v.IsDefault {
						target = v
						break
					}
				}
				variantFields := map[string]interface{}{}
				if cmd.Stock != nil {
					variantFields["stock"] = *cmd.Stock
				}
				if cmd.MinStock != nil {
					variantFields["min_stock"] = *cmd.MinStock
				}
				if err := variants.UpdateFields(cmd.TenantID, target.ID, variantFields); err != nil {
					return fmt.Errorf("failed to update default variant: %w", err)
				}
			}
		}

		product, err = products.FindByID(cmd.TenantID, current.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, nil
	}

	entries := []auditdomain.Entry{{
		TenantID: cmd.TenantID,
		UserID:   cmd.UserID,
		Action:   "product.updated",
		Entity:   "product",
		EntityID: product.ID,
	}}

	return product, entries, nil
}
