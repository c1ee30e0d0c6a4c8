package usecase

import (
	"context"
	"fmt"

	"github.com/stockfy/platform/internal/notification/domain"
	"github.com/stockfy/platform/pkg/logger"
)

// Notifier creates in-app notifications. Like audit recording it runs
// after the business transaction; failures are logged, not returned.
type Notifier struct {
	repo domain.NotificationRepository
}

// NewNotifier creates a notifier
func NewNotifier(repo domain.NotificationRepository) *Notifier {
	return &Notifier{repo: repo}
}

// Notify stores a notification for the tenant
func (n *Notifier) Notify(ctx context.Context, tenantID, kind, title, message string) {
	notification := &domain.Notification{
		TenantID: tenantID,
		Kind:     kind,
		Title:    title,
		Message:  message,
	}
	if err := n.repo.Create(notification); err != nil {
		logger.Error(ctx).Err(err).
			Str("tenant_id", tenantID).
			Str("kind", kind).
			Msg("Failed to create notification")
	}
}

// NotifyLowStock warns that a variant fell to or below its minimum
func (n *Notifier) NotifyLowStock(ctx context.Context, tenantID, sku string, stock, minStock int) {
	n.Notify(ctx, tenantID, domain.KindLowStock,
		"Estoque baixo",
		fmt.Sprintf("O SKU %s chegou a %d unidades (minimo %d)", sku, stock, minStock))
}

// ListNotificationsQuery carries pagination for the listing
type ListNotificationsQuery struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListNotificationsHandler lists notifications for a tenant
type ListNotificationsHandler struct {
	repo domain.NotificationRepository
}

// NewListNotificationsHandler creates a new handler
func NewListNotificationsHandler(repo domain.NotificationRepository) *ListNotificationsHandler {
	return &ListNotificationsHandler{repo: repo}
}

// Handle returns notifications, newest first
func (h *ListNotificationsHandler) Handle(ctx context.Context, q ListNotificationsQuery) ([]domain.Notification, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	return h.repo.FindAll(q.TenantID, q.Limit, q.Offset)
}

// CountUnreadHandler counts unread notifications
type CountUnreadHandler struct {
	repo domain.NotificationRepository
}

// NewCountUnreadHandler creates a new handler
func NewCountUnreadHandler(repo domain.NotificationRepository) *CountUnreadHandler {
	return &CountUnreadHandler{repo: repo}
}

// Handle returns the unread count for a tenant
func (h *CountUnreadHandler) Handle(ctx context.Context, tenantID string) (int64, error) {
	return h.repo.CountUnread(tenantID)
}

// MarkAllReadHandler marks every notification of a tenant as read
type MarkAllReadHandler struct {
	repo domain.NotificationRepository
}

// NewMarkAllReadHandler creates a new handler
func NewMarkAllReadHandler(repo domain.NotificationRepository) *MarkAllReadHandler {
	return &MarkAllReadHandler{repo: repo}
}

// Handle marks all notifications read
func (h *MarkAllReadHandler) Handle(ctx context.Context, tenantID string) error {
	return h.repo.MarkAllRead(tenantID)
}
