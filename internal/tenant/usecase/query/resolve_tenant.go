package query

import (
	"context"
	"strings"

	"github.com/stockfy/platform/internal/tenant/domain"
)

// ResolveTenantHandler resolves a tenant by its public slug
type ResolveTenantHandler struct {
	tenants domain.TenantRepository
}

// NewResolveTenantHandler creates a new handler
func NewResolveTenantHandler(tenants domain.TenantRepository) *ResolveTenantHandler {
	return &ResolveTenantHandler{tenants: tenants}
}

// Handle returns the tenant for a slug, or nil when no tenant matches
func (h *ResolveTenantHandler) Handle(ctx context.Context, slug string) (*domain.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, nil
	}
	return h.tenants.FindBySlug(slug)
}

// ListMembersHandler lists the memberships of a tenant
type ListMembersHandler struct {
	memberships domain.MembershipRepository
}

// NewListMembersHandler creates a new handler
func NewListMembersHandler(memberships domain.MembershipRepository) *ListMembersHandler {
	return &ListMembersHandler{memberships: memberships}
}

// Handle returns the members of a tenant
func (h *ListMembersHandler) Handle(ctx context.Context, tenantID string) ([]domain.Membership, error) {
	return h.memberships.FindByTenant(tenantID)
}
