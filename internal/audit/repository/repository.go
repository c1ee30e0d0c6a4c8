package repository

import (
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/audit/domain"
)

// GormAuditRepository implements AuditRepository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new audit repository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Create inserts an audit log row
func (r *GormAuditRepository) Create(log *domain.AuditLog) error {
	return r.db.Create(log).Error
}

// FindAll returns audit logs for a tenant, newest first
func (r *GormAuditRepository) FindAll(tenantID string, limit, offset int) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}
