package command

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/internal/tenant/repository"
)

func newTestRepos(t *testing.T) (*repository.GormTenantRepository, *repository.GormMembershipRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Tenant{}, &domain.Membership{}))
	return repository.NewGormTenantRepository(db), repository.NewGormMembershipRepository(db), db
}

func seedTenant(t *testing.T, db *gorm.DB, slug, customerID, status string) *domain.Tenant {
	t.Helper()

	tenant := &domain.Tenant{
		Name:               "Loja " + slug,
		Slug:               slug,
		SubscriptionStatus: status,
		BillingCustomerID:  customerID,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}
