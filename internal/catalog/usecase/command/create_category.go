package command

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	TenantID string
	UserID   string
	Name     string
}

// CreateCategoryHandler creates categories. Categories are shared across
// tenants, so no tenant transaction wraps the insert.
type CreateCategoryHandler struct {
	db *gorm.DB
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(db *gorm.DB) *CreateCategoryHandler {
	return &CreateCategoryHandler{db: db}
}

// Handle creates the category
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, []auditdomain.Entry, error) {
	if cmd.Name == "" {
		return nil, nil, fmt.Errorf("category name is required")
	}

	categories := repository.NewGormCategoryRepository(h.db.WithContext(ctx))

	category := &domain.Category{Name: cmd.Name}
	if err := categories.Create(category); err != nil {
		return nil, nil, fmt.Errorf("failed to create category: %w", err)
	}

	entries := []auditdomain.Entry{{
		TenantID: cmd.TenantID,
		UserID:   cmd.UserID,
		Action:   "category.created",
		Entity:   "category",
		EntityID: category.ID,
		Metadata: map[string]interface{}{"name": category.Name},
	}}

	return category, entries, nil
}
