package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/pkg/auth"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const trialPeriod = 14 * 24 * time.Hour

// CreateTenantCommand represents the data needed to provision a tenant
type CreateTenantCommand struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	OwnerUserID string `json:"owner_user_id"`
}

// CreateTenantHandler provisions a tenant with its owning membership
type CreateTenantHandler struct {
	tenants     domain.TenantRepository
	memberships domain.MembershipRepository
}

// NewCreateTenantHandler creates a new handler
func NewCreateTenantHandler(tenants domain.TenantRepository, memberships domain.MembershipRepository) *CreateTenantHandler {
	return &CreateTenantHandler{tenants: tenants, memberships: memberships}
}

// Handle creates the tenant in TRIALING and makes the owner an active
// admin member
func (h *CreateTenantHandler) Handle(ctx context.Context, cmd CreateTenantCommand) (*domain.Tenant, []auditdomain.Entry, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("tenant name is required")
	}
	slug := strings.ToLower(strings.TrimSpace(cmd.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, nil, fmt.Errorf("invalid tenant slug")
	}
	if cmd.OwnerUserID == "" {
		return nil, nil, fmt.Errorf("owner user id is required")
	}

	existing, err := h.tenants.FindBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("tenant slug %q is already taken", slug)
	}

	tenant := &domain.Tenant{
		Name:               name,
		Slug:               slug,
		SubscriptionStatus: domain.SubscriptionTrialing,
		TrialEndsAt:        time.Now().Add(trialPeriod),
	}
	if err := h.tenants.Create(tenant); err != nil {
		return nil, nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	membership := &domain.Membership{
		TenantID: tenant.ID,
		UserID:   cmd.OwnerUserID,
		Role:     auth.RoleAdmin,
		Status:   domain.MembershipActive,
	}
	if err := h.memberships.Create(membership); err != nil {
		return nil, nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	entries := []auditdomain.Entry{{
		TenantID: tenant.ID,
		UserID:   cmd.OwnerUserID,
		Action:   "tenant.created",
		Entity:   "tenant",
		EntityID: tenant.ID,
		Metadata: map[string]interface{}{"slug": tenant.Slug},
	}}

	return tenant, entries, nil
}
