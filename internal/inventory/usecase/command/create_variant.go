package command

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	catalogrepo "github.com/stockfy/platform/internal/catalog/repository"
	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/internal/inventory/sku"
	"github.com/stockfy/platform/pkg/database"
)

// CreateVariantCommand represents the command to create a product variant
type CreateVariantCommand struct {
	TenantID   string
	UserID     string
	ProductID  string
	SKU        string
	Attributes []domain.Attribute
	Stock      int
	MinStock   int
}

// CreateVariantHandler creates variants, allocating a SKU when none is given
type CreateVariantHandler struct {
	db        *gorm.DB
	skuPrefix string
}

// NewCreateVariantHandler creates a new create variant handler
func NewCreateVariantHandler(db *gorm.DB, skuPrefix string) *CreateVariantHandler {
	return &CreateVariantHandler{db: db, skuPrefix: skuPrefix}
}

// Handle creates a variant under the product. A caller-supplied SKU must be
// free within the tenant namespace; without one the allocator probes for
// the next free suffix against the same transaction snapshot. A product
// missing under the tenant yields a nil result.
func (h *CreateVariantHandler) Handle(ctx context.Context, cmd CreateVariantCommand) (*domain.ProductVariant, []auditdomain.Entry, error) {
	if cmd.ProductID == "" {
		return nil, nil, fmt.Errorf("product id is required")
	}
	if cmd.Stock < 0 || cmd.MinStock < 0 {
		return nil, nil, fmt.Errorf("stock and min stock cannot be negative")
	}

	var variant *domain.ProductVariant

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		products := catalogrepo.NewGormProductRepository(tx)
		variants := repository.NewGormVariantRepositoryWithTracing(tx)

		product, err := products.FindByID(cmd.TenantID, cmd.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil {
			return nil
		}

		code := strings.TrimSpace(cmd.SKU)
		if code != "" {
			existing, err := variants.FindBySKUWithContext(ctx, cmd.TenantID, code)
			if err != nil {
				return fmt.Errorf("failed to check sku: %w", err)
			}
			if existing != nil {
				return domain.ErrSKUAlreadyExists
			}
		} else {
			alloc := sku.NewAllocator(h.skuPrefix, variants)
			code, err = alloc.Generate(cmd.TenantID, product.Name, attributeValues(cmd.Attributes))
			if err != nil {
				return err
			}
		}

		v := &domain.ProductVariant{
			TenantID:   cmd.TenantID,
			ProductID:  product.ID,
			SKU:        code,
			Stock:      cmd.Stock,
			MinStock:   cmd.MinStock,
			Attributes: datatypes.NewJSONSlice(cmd.Attributes),
			IsDefault:  false,
		}
		if err := variants.Create(v); err != nil {
			return fmt.Errorf("failed to create variant: %w", err)
		}

		variant = v
		return nil
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
		Action:   "variant.created",
		Entity:   "variant",
		EntityID: variant.ID,
		Metadata: map[string]interface{}{
			"product_id": variant.ProductID,
			"sku":        variant.SKU,
		},
	}}

	return variant, entries, nil
}

func attributeValues(attrs []domain.Attribute) []string {
	values := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		values = append(values, attr.Value)
	}
	return values
}
