package query

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/catalog/domain"
	"github.com/stockfy/platform/internal/catalog/repository"
)

// ListCategoriesHandler lists the shared category taxonomy
type ListCategoriesHandler struct {
	db *gorm.DB
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(db *gorm.DB) *ListCategoriesHandler {
	return &ListCategoriesHandler{db: db}
}

// Handle returns all categories ordered by name
func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	return repository.NewGormCategoryRepository(h.db.WithContext(ctx)).FindAll()
}
