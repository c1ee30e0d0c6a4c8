package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// WithTenant runs fn inside a transaction bound to a tenant.
//
// The transaction sets the session-local app.tenant_id marker consumed by
// row-level-security policies. That marker is defense in depth only: every
// repository method still takes the tenant ID as an explicit parameter and
// filters on it. If fn returns an error the whole transaction rolls back,
// so multi-entity writes (variant update + movement insert) never persist
// partially.
func WithTenant(ctx context.Context, db *gorm.DB, tenantID string, fn func(tx *gorm.DB) error) error {
	if tenantID == "" {
		return fmt.Errorf("tenant id is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// set_config is PostgreSQL-only; the sqlite dialector used in tests
		// has no session variables and no RLS policies to feed.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT set_config('app.tenant_id', ?, true)", tenantID).Error; err != nil {
				return fmt.Errorf("failed to set tenant context: %w", err)
			}
		}
		return fn(tx)
	})
}
