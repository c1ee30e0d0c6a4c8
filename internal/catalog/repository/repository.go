package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/catalog/domain"
)

// GormCategoryRepository persists categories
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{})
}

func (r *GormCategoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll() ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// GormProductRepository persists products. Construct it over the root
// *gorm.DB for reads, or over the transaction handle passed by
// database.WithTenant for tenant-scoped writes.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(tenantID, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("Category").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(tenantID, search string) ([]domain.Product, error) {
	var products []domain.Product
	query := r.db.Preload("Category").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC")
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *GormProductRepository) UpdateFields(tenantID, id string, fields map[string]interface{}) error {
	return r.db.Model(&domain.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(fields).Error
}

func (r *GormProductRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ?", tenantID).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *GormProductRepository) Count(tenantID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
