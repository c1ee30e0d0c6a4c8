package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/notification/domain"
	"github.com/stockfy/platform/internal/notification/repository"
)

func newTestRepo(t *testing.T) *repository.GormNotificationRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Notification{}))
	return repository.NewGormNotificationRepository(db)
}

func TestNotifyLowStockStoresNotification(t *testing.T) {
	repo := newTestRepo(t)
	notifier := NewNotifier(repo)

	notifier.NotifyLowStock(context.Background(), "tenant-1", "STK-CAMISA-001", 2, 5)

	list, err := NewListNotificationsHandler(repo).Handle(context.Background(), ListNotificationsQuery{TenantID: "tenant-1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.KindLowStock, list[0].Kind)
	assert.Equal(t, "Estoque baixo", list[0].Title)
	assert.Contains(t, list[0].Message, "STK-CAMISA-001")
	assert.Contains(t, list[0].Message, "2 unidades")
	assert.False(t, list[0].Read)
}

func TestNotificationsAreTenantScoped(t *testing.T) {
	repo := newTestRepo(t)
	notifier := NewNotifier(repo)

	notifier.Notify(context.Background(), "tenant-a", domain.KindMovement, "Saida", "10 unidades")
	notifier.Notify(context.Background(), "tenant-b", domain.KindMovement, "Saida", "3 unidades")

	list, err := NewListNotificationsHandler(repo).Handle(context.Background(), ListNotificationsQuery{TenantID: "tenant-a"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tenant-a", list[0].TenantID)
}

func TestCountUnreadAndMarkAllRead(t *testing.T) {
	repo := newTestRepo(t)
	notifier := NewNotifier(repo)
	ctx := context.Background()

	notifier.NotifyLowStock(ctx, "tenant-1", "SKU-1", 1, 5)
	notifier.NotifyLowStock(ctx, "tenant-1", "SKU-2", 0, 3)
	notifier.NotifyLowStock(ctx, "tenant-2", "SKU-3", 2, 4)

	count, err := NewCountUnreadHandler(repo).Handle(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, NewMarkAllReadHandler(repo).Handle(ctx, "tenant-1"))

	count, err = NewCountUnreadHandler(repo).Handle(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = NewCountUnreadHandler(repo).Handle(ctx, "tenant-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
