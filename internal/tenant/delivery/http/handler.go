package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stockfy/platform/internal/api"
	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	"github.com/stockfy/platform/internal/middleware"
	"github.com/stockfy/platform/internal/tenant/usecase/command"
	"github.com/stockfy/platform/internal/tenant/usecase/query"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// TenantHandler handles HTTP requests for tenants
type TenantHandler struct {
	createHandler       *command.CreateTenantHandler
	subscriptionHandler *command.ApplySubscriptionEventHandler
	resolveHandler      *query.ResolveTenantHandler
	membersHandler      *query.ListMembersHandler
	recorder            auditusecase.Recorder
	tokens              *auth.TokenManager
	webhookSecret       string
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(
	createHandler *command.CreateTenantHandler,
	subscriptionHandler *command.ApplySubscriptionEventHandler,
	resolveHandler *query.ResolveTenantHandler,
	membersHandler *query.ListMembersHandler,
	recorder auditusecase.Recorder,
	tokens *auth.TokenManager,
	webhookSecret string,
) *TenantHandler {
	return &TenantHandler{
		createHandler:       createHandler,
		subscriptionHandler: subscriptionHandler,
		resolveHandler:      resolveHandler,
		membersHandler:      membersHandler,
		recorder:            recorder,
		tokens:              tokens,
		webhookSecret:       webhookSecret,
	}
}

// CreateTenant handles POST /api/tenants
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	tenant, entries, err := h.createHandler.Handle(r.Context(), command.CreateTenantCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		OwnerUserID: middleware.UserID(r.Context()),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create tenant")
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.Created(w, "Tenant created successfully", tenant)
}

// ResolveTenant handles GET /api/tenants/resolve/{slug}
func (h *TenantHandler) ResolveTenant(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	tenant, err := h.resolveHandler.Handle(r.Context(), slug)
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("slug", slug).Msg("Failed to resolve tenant")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to resolve tenant")
		return
	}
	if tenant == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Tenant not found")
		return
	}

	// Resolution is public; expose only what the login screen needs
	api.OK(w, map[string]interface{}{
		"id":                  tenant.ID,
		"name":                tenant.Name,
		"slug":                tenant.Slug,
		"subscription_status": tenant.SubscriptionStatus,
	})
}

// ListMembers handles GET /api/tenants/members
func (h *TenantHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.membersHandler.Handle(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list members")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list members")
		return
	}
	api.OK(w, members)
}

// BillingWebhook handles POST /api/billing/webhook
func (h *TenantHandler) BillingWebhook(w http.ResponseWriter, r *http.Request) {
	// An empty configured secret would make the constant-time compare
	// accept requests with no header at all, so the endpoint stays shut
	// until BILLING_WEBHOOK_SECRET is set.
	if h.webhookSecret == "" {
		logger.Warn(r.Context()).Msg("Billing webhook called but no secret is configured")
		api.Fail(w, http.StatusServiceUnavailable, api.CodeInternal, "Billing webhook is not configured")
		return
	}

	secret := r.Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid webhook secret")
		return
	}

	var req command.SubscriptionEventCommand
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	tenant, entries, err := h.subscriptionHandler.Handle(r.Context(), req)
	if err != nil {
		logger.Error(r.Context()).Err(err).
			Str("event_type", req.EventType).
			Msg("Failed to apply billing event")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to apply billing event")
		return
	}

	h.recorder.Record(r.Context(), entries)

	// Always 200 for processed events, applied or ignored
	if tenant == nil {
		api.OK(w, map[string]string{"result": "ignored"})
		return
	}
	api.OK(w, map[string]string{
		"result": "applied",
		"status": tenant.SubscriptionStatus,
	})
}

// RegisterRoutes registers all tenant routes
func (h *TenantHandler) RegisterRoutes(router *mux.Router) {
	authn := middleware.Auth(h.tokens)
	authUser := middleware.AuthUser(h.tokens)

	router.HandleFunc("/api/tenants/resolve/{slug}", h.ResolveTenant).Methods("GET")
	router.HandleFunc("/api/billing/webhook", h.BillingWebhook).Methods("POST")
	router.HandleFunc("/api/tenants", authUser(h.CreateTenant)).Methods("POST")
	router.HandleFunc("/api/tenants/members", authn(h.ListMembers)).Methods("GET")
}
