package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/inventory/domain"
)

// GormVariantRepository persists product variants. Construct it over the
// root *gorm.DB for reads, or over the transaction handle passed by
// database.WithTenant for tenant-scoped writes.
type GormVariantRepository struct {
	db *gorm.DB
}

func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

func (r *GormVariantRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.ProductVariant{})
}

func (r *GormVariantRepository) Create(variant *domain.ProductVariant) error {
	return r.db.Create(variant).Error
}

func (r *GormVariantRepository) FindByID(tenantID, id string) (*domain.ProductVariant, error) {
	var variant domain.ProductVariant
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormVariantRepository) FindBySKU(tenantID, sku string) (*domain.ProductVariant, error) {
	var variant domain.ProductVariant
	err := r.db.Where("tenant_id = ? AND sku = ?", tenantID, sku).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormVariantRepository) Exists(tenantID, sku string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ProductVariant{}).
		Where("tenant_id = ? AND sku = ?", tenantID, sku).
		Count(&count).Error
	return count > 0, err
}

func (r *GormVariantRepository) FindAll(tenantID, productID string) ([]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	query := r.db.Where("tenant_id = ?", tenantID).Order("created_at DESC")
	if productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	err := query.Find(&variants).Error
	return variants, err
}

func (r *GormVariantRepository) FindByProduct(tenantID, productID string) ([]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	err := r.db.Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("created_at ASC").
		Find(&variants).Error
	return variants, err
}

func (r *GormVariantRepository) UpdateFields(tenantID, id string, fields map[string]interface{}) error {
	return r.db.Model(&domain.ProductVariant{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(fields).Error
}

func (r *GormVariantRepository) UpdateStock(tenantID, id string, stock int) error {
	return r.db.Model(&domain.ProductVariant{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("stock", stock).Error
}

func (r *GormVariantRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ?", tenantID).Delete(&domain.ProductVariant{}, "id = ?", id).Error
}

func (r *GormVariantRepository) SumStock(tenantID string) (int64, error) {
	var total int64
	err := r.db.Model(&domain.ProductVariant{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormVariantRepository) CountLowStock(tenantID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ProductVariant{}).
		Where("tenant_id = ? AND stock <= min_stock", tenantID).
		Count(&count).Error
	return count, err
}

func (r *GormVariantRepository) StockByCategory(tenantID string) ([]domain.CategoryStock, error) {
	var rows []domain.CategoryStock
	err := r.db.Table("product_variants").
		Select("COALESCE(categories.name, 'Outros') AS name, COALESCE(SUM(product_variants.stock), 0) AS value").
		Joins("LEFT JOIN products ON products.id = product_variants.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("product_variants.tenant_id = ?", tenantID).
		Group("categories.name").
		Scan(&rows).Error
	return rows, err
}

func (r *GormVariantRepository) InventoryValue(tenantID string) (float64, error) {
	var total float64
	err := r.db.Table("product_variants").
		Select("COALESCE(SUM(product_variants.stock * products.unit_price), 0)").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.tenant_id = ?", tenantID).
		Scan(&total).Error
	return total, err
}

// GormMovementRepository persists the append-only stock ledger
type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockMovement{})
}

func (r *GormMovementRepository) Create(movement *domain.StockMovement) error {
	return r.db.Create(movement).Error
}

func (r *GormMovementRepository) FindAll(tenantID string, limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindSince(tenantID string, since time.Time) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindBetween(tenantID string, from, to time.Time) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) CountSince(tenantID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.StockMovement{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Count(&count).Error
	return count, err
}

func (r *GormMovementRepository) Recent(tenantID string, limit int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Variant").
		Find(&movements).Error
	return movements, err
}
