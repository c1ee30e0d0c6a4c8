package command

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
	invdomain "github.com/stockfy/platform/internal/inventory/domain"
	invrepo "github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/internal/inventory/sku"
	"github.com/stockfy/platform/pkg/database"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	TenantID    string
	UserID      string
	CategoryID  string
	Name        string
	Description string
	UnitPrice   float64
	Stock       int
	MinStock    int
}

// CreateProductHandler creates products together with their default variant
type CreateProductHandler struct {
	db        *gorm.DB
	skuPrefix string
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(db *gorm.DB, skuPrefix string) *CreateProductHandler {
	return &CreateProductHandler{db: db, skuPrefix: skuPrefix}
}

// Handle creates the product and its default variant in one tenant
// transaction. The default variant carries the initial stock and gets an
// allocated SKU; exactly one default variant exists per product.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, []auditdomain.Entry, error) {
	if cmd.Name == "" {
		return nil, nil, fmt.Errorf("product name is required")
	}
	if cmd.CategoryID == "" {
		return nil, nil, fmt.Errorf("category id is required")
	}
	if cmd.UnitPrice < 0 {
		return nil, nil, fmt.Errorf("unit price cannot be negative")
	}
	if cmd.Stock < 0 || cmd.MinStock < 0 {
		return nil, nil, fmt.Errorf("stock and min stock cannot be negative")
	}

	var product *domain.Product
	var defaultSKU string

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		categories := repository.NewGormCategoryRepository(tx)
		products := repository.NewGormProductRepository(tx)
		variants := invrepo.NewGormVariantRepository(tx)

		category, err := categories.FindByID(cmd.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to load category: %w", err)
		}
		if category == nil {
			return fmt.Errorf("category not found")
		}

		alloc := sku.NewAllocator(h.skuPrefix, variants)
		code, err := alloc.Generate(cmd.TenantID, cmd.Name, nil)
		if err != nil {
			return err
		}

		p := &domain.Product{
			TenantID:    cmd.TenantID,
			CategoryID:  category.ID,
			Name:        cmd.Name,
			Description: cmd.Description,
			UnitPrice:   cmd.UnitPrice,
		}
		if err := products.Create(p); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		v := &invdomain.ProductVariant{
			TenantID:  cmd.TenantID,
			ProductID: p.ID,
			SKU:       code,
			Stock:     cmd.Stock,
			MinStock:  cmd.MinStock,
			IsDefault: true,
		}
		if err := variants.Create(v); err != nil {
			return fmt.Errorf("failed to create default variant: %w", err)
		}

		product = p
		defaultSKU = code
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	entries := []auditdomain.Entry{{
		TenantID: cmd.TenantID,
		UserID:   cmd.UserID,
		Action:   "product.created",
		Entity:   "product",
		EntityID: product.ID,
		Metadata: map[string]interface{}{
			"name":        product.Name,
			"default_sku": defaultSKU,
		},
	}}

	return product, entries, nil
}
