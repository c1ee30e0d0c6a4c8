package command

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/catalog/domain"
	invdomain "github.com/stockfy/platform/internal/inventory/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&invdomain.ProductVariant{},
		&invdomain.StockMovement{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{Name: "Calcados " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(category).Error)
	return category
}
