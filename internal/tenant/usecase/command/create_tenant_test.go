package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/pkg/auth"
)

func TestCreateTenantProvisionsOwner(t *testing.T) {
	tenants, memberships, _ := newTestRepos(t)
	handler := NewCreateTenantHandler(tenants, memberships)

	tenant, entries, err := handler.Handle(context.Background(), CreateTenantCommand{
		Name:        "Loja da Maria",
		Slug:        "Loja-Da-Maria",
		OwnerUserID: "22222222-2222-2222-2222-222222222222",
	})
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, "loja-da-maria", tenant.Slug)
	assert.Equal(t, domain.SubscriptionTrialing, tenant.SubscriptionStatus)
	assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), tenant.TrialEndsAt, time.Minute)

	member, err := memberships.Find(tenant.ID, "22222222-2222-2222-2222-222222222222")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, auth.RoleAdmin, member.Role)
	assert.True(t, member.IsActive())

	require.Len(t, entries, 1)
	assert.Equal(t, "tenant.created", entries[0].Action)
	assert.Equal(t, tenant.ID, entries[0].TenantID)
	assert.Equal(t, "loja-da-maria", entries[0].Metadata["slug"])
}

func TestCreateTenantRejectsBadSlug(t *testing.T) {
	tenants, memberships, _ := newTestRepos(t)
	handler := NewCreateTenantHandler(tenants, memberships)

	for _, slug := range []string{"", "loja da maria", "loja--maria", "-loja", "loja-", "Loja_Maria"} {
		tenant, entries, err := handler.Handle(context.Background(), CreateTenantCommand{
			Name:        "Loja",
			Slug:        slug,
			OwnerUserID: "user-1",
		})
		assert.Error(t, err, "slug %q", slug)
		assert.Nil(t, tenant)
		assert.Empty(t, entries)
	}
}

func TestCreateTenantRejectsDuplicateSlug(t *testing.T) {
	tenants, memberships, db := newTestRepos(t)
	seedTenant(t, db, "loja-da-maria", "", domain.SubscriptionActive)

	handler := NewCreateTenantHandler(tenants, memberships)
	tenant, entries, err := handler.Handle(context.Background(), CreateTenantCommand{
		Name:        "Outra Loja",
		Slug:        "loja-da-maria",
		OwnerUserID: "user-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	assert.Nil(t, tenant)
	assert.Empty(t, entries)
}

func TestCreateTenantRequiresOwner(t *testing.T) {
	tenants, memberships, _ := newTestRepos(t)
	handler := NewCreateTenantHandler(tenants, memberships)

	tenant, _, err := handler.Handle(context.Background(), CreateTenantCommand{
		Name: "Loja",
		Slug: "loja",
	})
	require.Error(t, err)
	assert.Nil(t, tenant)
}
