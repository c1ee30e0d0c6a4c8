package repository

import (
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/notification/domain"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new notification repository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a notification
func (r *GormNotificationRepository) Create(notification *domain.Notification) error {
	return r.db.Create(notification).Error
}

// FindAll returns notifications for a tenant, newest first
func (r *GormNotificationRepository) FindAll(tenantID string, limit, offset int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

// CountUnread counts unread notifications for a tenant
func (r *GormNotificationRepository) CountUnread(tenantID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("tenant_id = ? AND read = ?", tenantID, false).
		Count(&count).Error
	return count, err
}

// MarkAllRead marks every notification of a tenant as read
func (r *GormNotificationRepository) MarkAllRead(tenantID string) error {
	return r.db.Model(&domain.Notification{}).
		Where("tenant_id = ? AND read = ?", tenantID, false).
		Update("read", true).Error
}
