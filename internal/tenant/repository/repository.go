package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/tenant/domain"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new tenant repository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Create inserts a tenant
func (r *GormTenantRepository) Create(tenant *domain.Tenant) error {
	return r.db.Create(tenant).Error
}

// FindByID finds a tenant by id
func (r *GormTenantRepository) FindByID(id string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.First(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindBySlug finds a tenant by its public slug
func (r *GormTenantRepository) FindBySlug(slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.First(&tenant, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindByBillingCustomer finds a tenant by its billing customer reference
func (r *GormTenantRepository) FindByBillingCustomer(customerID string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.First(&tenant, "billing_customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpdateSubscription sets the subscription status
func (r *GormTenantRepository) UpdateSubscription(id, status string) error {
	return r.db.Model(&domain.Tenant{}).
		Where("id = ?", id).
		Update("subscription_status", status).Error
}

// GormMembershipRepository implements MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new membership repository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Create inserts a membership
func (r *GormMembershipRepository) Create(membership *domain.Membership) error {
	return r.db.Create(membership).Error
}

// Find returns the membership of a user within a tenant
func (r *GormMembershipRepository) Find(tenantID, userID string) (*domain.Membership, error) {
	var membership domain.Membership
	err := r.db.First(&membership, "tenant_id = ? AND user_id = ?", tenantID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// FindByTenant lists memberships of a tenant
func (r *GormMembershipRepository) FindByTenant(tenantID string) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at ASC").Find(&memberships).Error
	return memberships, err
}

// UpdateStatus sets the membership status
func (r *GormMembershipRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&domain.Membership{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateRole sets the membership role
func (r *GormMembershipRepository) UpdateRole(id, role string) error {
	return r.db.Model(&domain.Membership{}).
		Where("id = ?", id).
		Update("role", role).Error
}
