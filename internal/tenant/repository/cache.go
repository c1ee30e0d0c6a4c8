package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/pkg/logger"
)

const slugCacheTTL = 5 * time.Minute

// CachedTenantRepository decorates a TenantRepository with a Redis
// slug cache. Slug lookups happen on every tenant-scoped request, so
// they should rarely hit Postgres.
type CachedTenantRepository struct {
	inner domain.TenantRepository
	cache *redis.Client
}

// NewCachedTenantRepository wraps a tenant repository with caching
func NewCachedTenantRepository(inner domain.TenantRepository, cache *redis.Client) *CachedTenantRepository {
	return &CachedTenantRepository{inner: inner, cache: cache}
}

// Create inserts a tenant
func (r *CachedTenantRepository) Create(tenant *domain.Tenant) error {
	return r.inner.Create(tenant)
}

// FindByID finds a tenant by id
func (r *CachedTenantRepository) FindByID(id string) (*domain.Tenant, error) {
	return r.inner.FindByID(id)
}

// FindBySlug finds a tenant by slug, consulting the cache first
func (r *CachedTenantRepository) FindBySlug(slug string) (*domain.Tenant, error) {
	ctx := context.Background()
	key := slugKey(slug)

	if cached, err := r.cache.Get(ctx, key).Bytes(); err == nil {
		var tenant domain.Tenant
		if err := json.Unmarshal(cached, &tenant); err == nil {
			return &tenant, nil
		}
	}

	tenant, err := r.inner.FindBySlug(slug)
	if err != nil || tenant == nil {
		return tenant, err
	}

	if payload, err := json.Marshal(tenant); err == nil {
		if err := r.cache.Set(ctx, key, payload, slugCacheTTL).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("slug", slug).Msg("Failed to cache tenant")
		}
	}

	return tenant, nil
}

// FindByBillingCustomer finds a tenant by its billing customer reference
func (r *CachedTenantRepository) FindByBillingCustomer(customerID string) (*domain.Tenant, error) {
	return r.inner.FindByBillingCustomer(customerID)
}

// UpdateSubscription sets the subscription status and drops the cache
// entry so the next resolve sees the new status
func (r *CachedTenantRepository) UpdateSubscription(id, status string) error {
	if err := r.inner.UpdateSubscription(id, status); err != nil {
		return err
	}

	tenant, err := r.inner.FindByID(id)
	if err == nil && tenant != nil {
		if err := r.cache.Del(context.Background(), slugKey(tenant.Slug)).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("slug", tenant.Slug).Msg("Failed to invalidate tenant cache")
		}
	}
	return nil
}

func slugKey(slug string) string {
	return "tenant:slug:" + slug
}
