package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ledgerRow struct {
	ID    uint `gorm:"primaryKey"`
	Value string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&ledgerRow{}))
	return db
}

func TestWithTenantRequiresTenantID(t *testing.T) {
	db := newTestDB(t)

	err := WithTenant(context.Background(), db, "", func(tx *gorm.DB) error {
		t.Fatal("fn must not run without a tenant")
		return nil
	})
	require.Error(t, err)
}

func TestWithTenantCommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)

	err := WithTenant(context.Background(), db, "tenant-1", func(tx *gorm.DB) error {
		return tx.Create(&ledgerRow{Value: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&ledgerRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTenantRollsBackOnError(t *testing.T) {
	db := newTestDB(t)

	err := WithTenant(context.Background(), db, "tenant-1", func(tx *gorm.DB) error {
		if err := tx.Create(&ledgerRow{Value: "first"}).Error; err != nil {
			return err
		}
		if err := tx.Create(&ledgerRow{Value: "second"}).Error; err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&ledgerRow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "partial writes must not survive")
}
