package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	"github.com/stockfy/platform/internal/tenant/domain"
	"github.com/stockfy/platform/internal/tenant/repository"
	"github.com/stockfy/platform/internal/tenant/usecase/command"
	"github.com/stockfy/platform/internal/tenant/usecase/query"
	"github.com/stockfy/platform/pkg/auth"
)

func newTestHandler(t *testing.T, webhookSecret string) (*TenantHandler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Tenant{}, &domain.Membership{}))

	tenants := repository.NewGormTenantRepository(db)
	memberships := repository.NewGormMembershipRepository(db)

	handler := NewTenantHandler(
		command.NewCreateTenantHandler(tenants, memberships),
		command.NewApplySubscriptionEventHandler(tenants),
		query.NewResolveTenantHandler(tenants),
		query.NewListMembersHandler(memberships),
		auditusecase.NopRecorder{},
		auth.NewTokenManager("test-secret", time.Hour),
		webhookSecret,
	)
	return handler, db
}

func seedBillingTenant(t *testing.T, db *gorm.DB) *domain.Tenant {
	t.Helper()

	tenant := &domain.Tenant{
		Name:               "Loja",
		Slug:               "loja",
		SubscriptionStatus: domain.SubscriptionActive,
		BillingCustomerID:  "cus_123",
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func postWebhook(handler *TenantHandler, secretHeader string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	body := `{"event_type":"subscription.canceled","customer_id":"cus_123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", strings.NewReader(body))
	if secretHeader != "" {
		r.Header.Set("X-Webhook-Secret", secretHeader)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestBillingWebhookRejectedWithoutConfiguredSecret(t *testing.T) {
	handler, db := newTestHandler(t, "")
	tenant := seedBillingTenant(t, db)

	rec := postWebhook(handler, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var stored domain.Tenant
	require.NoError(t, db.First(&stored, "id = ?", tenant.ID).Error)
	assert.Equal(t, domain.SubscriptionActive, stored.SubscriptionStatus, "event must not be applied")
}

func TestBillingWebhookRejectsWrongSecret(t *testing.T) {
	handler, db := newTestHandler(t, "shared-secret")
	tenant := seedBillingTenant(t, db)

	rec := postWebhook(handler, "wrong-secret")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var stored domain.Tenant
	require.NoError(t, db.First(&stored, "id = ?", tenant.ID).Error)
	assert.Equal(t, domain.SubscriptionActive, stored.SubscriptionStatus)
}

func TestBillingWebhookAppliesEventWithValidSecret(t *testing.T) {
	handler, db := newTestHandler(t, "shared-secret")
	tenant := seedBillingTenant(t, db)

	rec := postWebhook(handler, "shared-secret")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied"`)

	var stored domain.Tenant
	require.NoError(t, db.First(&stored, "id = ?", tenant.ID).Error)
	assert.Equal(t, domain.SubscriptionCanceled, stored.SubscriptionStatus)
}
