package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionTrialing = "TRIALING"
	SubscriptionActive   = "ACTIVE"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
)

// Membership statuses
const (
	MembershipInvited   = "INVITED"
	MembershipActive    = "ACTIVE"
	MembershipSuspended = "SUSPENDED"
	MembershipRemoved   = "REMOVED"
)

// Tenant is one isolated workspace. All inventory data hangs off a
// tenant id; the slug is the public handle used in URLs.
type Tenant struct {
	ID                    string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name                  string    `json:"name" gorm:"size:120;not null"`
	Slug                  string    `json:"slug" gorm:"size:60;uniqueIndex;not null"`
	Plan                  string    `json:"plan" gorm:"size:30;not null;default:free"`
	SubscriptionStatus    string    `json:"subscription_status" gorm:"size:20;not null;default:TRIALING"`
	BillingCustomerID     string    `json:"billing_customer_id,omitempty" gorm:"size:80;index"`
	BillingSubscriptionID string    `json:"billing_subscription_id,omitempty" gorm:"size:80"`
	TrialEndsAt           time.Time `json:"trial_ends_at"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Tenant) TableName() string {
	return "tenants"
}

// BeforeCreate assigns the tenant ID
func (t *Tenant) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsOperational reports whether the tenant may use the product.
// PAST_DUE still operates; only CANCELED is locked out.
func (t *Tenant) IsOperational() bool {
	return t.SubscriptionStatus != SubscriptionCanceled
}

// Membership links a user to a tenant with a role
type Membership struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_tenant_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_tenant_user"`
	Role      string    `json:"role" gorm:"size:20;not null"`
	Status    string    `json:"status" gorm:"size:20;not null;default:INVITED"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Membership) TableName() string {
	return "memberships"
}

// BeforeCreate assigns the membership ID
func (m *Membership) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the member may act within the tenant
func (m *Membership) IsActive() bool {
	return m.Status == MembershipActive
}

// TenantRepository defines the contract for tenant access
type TenantRepository interface {
	Create(tenant *Tenant) error
	FindByID(id string) (*Tenant, error)
	FindBySlug(slug string) (*Tenant, error)
	FindByBillingCustomer(customerID string) (*Tenant, error)
	UpdateSubscription(id, status string) error
}

// MembershipRepository defines the contract for membership access
type MembershipRepository interface {
	Create(membership *Membership) error
	Find(tenantID, userID string) (*Membership, error)
	FindByTenant(tenantID string) ([]Membership, error)
	UpdateStatus(id, status string) error
	UpdateRole(id, role string) error
}
