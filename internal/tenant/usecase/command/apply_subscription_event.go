package command

import (
	"context"
	"fmt"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/pkg/logger"
)

// statusByEvent maps normalized billing event types to subscription
// statuses. Unknown events are acknowledged and ignored so the
// provider does not retry them forever.
var statusByEvent = map[string]string{
	"subscription.trial_started":  domain.SubscriptionTrialing,
	"subscription.activated":      domain.SubscriptionActive,
	"subscription.payment_ok":     domain.SubscriptionActive,
	"subscription.payment_failed": domain.SubscriptionPastDue,
	"subscription.canceled":       domain.SubscriptionCanceled,
}

// SubscriptionEventCommand is a normalized billing webhook payload
type SubscriptionEventCommand struct {
	EventType      string `json:"event_type"`
	CustomerID     string `json:"customer_id"`
	SubscriptionID string `json:"subscription_id"`
}

// ApplySubscriptionEventHandler applies billing events to tenants
type ApplySubscriptionEventHandler struct {
	tenants domain.TenantRepository
}

// NewApplySubscriptionEventHandler creates a new handler
func NewApplySubscriptionEventHandler(tenants domain.TenantRepository) *ApplySubscriptionEventHandler {
	return &ApplySubscriptionEventHandler{tenants: tenants}
}

// Handle resolves the tenant by billing customer and moves its
// subscription status. Returns (nil, nil, nil) when the event type is
// unknown or the customer has no tenant.
func (h *ApplySubscriptionEventHandler) Handle(ctx context.Context, cmd SubscriptionEventCommand) (*domain.Tenant, []auditdomain.Entry, error) {
	if cmd.CustomerID == "" {
		return nil, nil, fmt.Errorf("customer id is required")
	}

	status, ok := statusByEvent[cmd.EventType]
	if !ok {
		logger.Warn(ctx).
			Str("event_type", cmd.EventType).
			Str("customer_id", cmd.CustomerID).
			Msg("Ignoring unknown billing event")
		return nil, nil, nil
	}

	tenant, err := h.tenants.FindByBillingCustomer(cmd.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if tenant == nil {
		logger.Warn(ctx).
			Str("customer_id", cmd.CustomerID).
			Msg("Billing event for unknown customer")
		return nil, nil, nil
	}

	if tenant.SubscriptionStatus != status {
		if err := h.tenants.UpdateSubscription(tenant.ID, status); err != nil {
			return nil, nil, fmt.Errorf("failed to update subscription: %w", err)
		}
		tenant.SubscriptionStatus = status
	}

	entries := []auditdomain.Entry{{
		TenantID: tenant.ID,
		UserID:   "billing",
		Action:   "tenant.subscription_updated",
		Entity:   "tenant",
		EntityID: tenant.ID,
		Metadata: map[string]interface{}{
			"event_type": cmd.EventType,
			"status":     status,
		},
	}}

	return tenant, entries, nil
}
