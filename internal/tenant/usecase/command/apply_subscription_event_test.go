package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfy/platform/internal/tenant/domain"
)

func TestApplySubscriptionEventMovesStatus(t *testing.T) {
	tenants, _, db := newTestRepos(t)
	seeded := seedTenant(t, db, "loja-ativa", "cus_123", domain.SubscriptionTrialing)

	handler := NewApplySubscriptionEventHandler(tenants)

	cases := []struct {
		eventType string
		want      string
	}{
		{"subscription.activated", domain.SubscriptionActive},
		{"subscription.payment_failed", domain.SubscriptionPastDue},
		{"subscription.payment_ok", domain.SubscriptionActive},
		{"subscription.canceled", domain.SubscriptionCanceled},
	}
	for _, tc := range cases {
		tenant, entries, err := handler.Handle(context.Background(), SubscriptionEventCommand{
			EventType:  tc.eventType,
			CustomerID: "cus_123",
		})
		require.NoError(t, err, tc.eventType)
		require.NotNil(t, tenant, tc.eventType)
		assert.Equal(t, tc.want, tenant.SubscriptionStatus)

		stored, err := tenants.FindByID(seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, stored.SubscriptionStatus)

		require.Len(t, entries, 1)
		assert.Equal(t, "tenant.subscription_updated", entries[0].Action)
		assert.Equal(t, "billing", entries[0].UserID)
		assert.Equal(t, tc.want, entries[0].Metadata["status"])
	}
}

func TestApplySubscriptionEventCanceledLocksTenantOut(t *testing.T) {
	tenants, _, db := newTestRepos(t)
	seedTenant(t, db, "loja-cancelada", "cus_456", domain.SubscriptionActive)

	handler := NewApplySubscriptionEventHandler(tenants)
	tenant, _, err := handler.Handle(context.Background(), SubscriptionEventCommand{
		EventType:  "subscription.canceled",
		CustomerID: "cus_456",
	})
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.False(t, tenant.IsOperational())
}

func TestApplySubscriptionEventPastDueStaysOperational(t *testing.T) {
	tenants, _, db := newTestRepos(t)
	seedTenant(t, db, "loja-atrasada", "cus_789", domain.SubscriptionActive)

	handler := NewApplySubscriptionEventHandler(tenants)
	tenant, _, err := handler.Handle(context.Background(), SubscriptionEventCommand{
		EventType:  "subscription.payment_failed",
		CustomerID: "cus_789",
	})
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.True(t, tenant.IsOperational())
}

func TestApplySubscriptionEventIgnoresUnknownEvent(t *testing.T) {
	tenants, _, db := newTestRepos(t)
	seedTenant(t, db, "loja-misteriosa", "cus_000", domain.SubscriptionActive)

	handler := NewApplySubscriptionEventHandler(tenants)
	tenant, entries, err := handler.Handle(context.Background(), SubscriptionEventCommand{
		EventType:  "invoice.finalized",
		CustomerID: "cus_000",
	})
	require.NoError(t, err)
	assert.Nil(t, tenant)
	assert.Empty(t, entries)
}

func TestApplySubscriptionEventIgnoresUnknownCustomer(t *testing.T) {
	tenants, _, _ := newTestRepos(t)

	handler := NewApplySubscriptionEventHandler(tenants)
	tenant, entries, err := handler.Handle(context.Background(), SubscriptionEventCommand{
		EventType:  "subscription.activated",
		CustomerID: "cus_nobody",
	})
	require.NoError(t, err)
	assert.Nil(t, tenant)
	assert.Empty(t, entries)
}

func TestApplySubscriptionEventRequiresCustomer(t *testing.T) {
	tenants, _, _ := newTestRepos(t)

	handler := NewApplySubscriptionEventHandler(tenants)
	tenant, _, err := handler.Handle(context.Background(), SubscriptionEventCommand{
		EventType: "subscription.activated",
	})
	require.Error(t, err)
	assert.Nil(t, tenant)
}
