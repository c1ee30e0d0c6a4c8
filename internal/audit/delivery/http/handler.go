package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stockfy/platform/internal/api"
	"github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/middleware"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// AuditHandler handles HTTP requests for the audit trail
type AuditHandler struct {
	repo   domain.AuditRepository
	tokens *auth.TokenManager
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(repo domain.AuditRepository, tokens *auth.TokenManager) *AuditHandler {
	return &AuditHandler{repo: repo, tokens: tokens}
}

// ListAuditLogs handles GET /api/audit-logs
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 50
	}

	logs, err := h.repo.FindAll(middleware.TenantID(r.Context()), limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list audit logs")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list audit logs")
		return
	}
	api.OK(w, logs)
}

// RegisterRoutes registers all audit routes. The trail is admin-only.
func (h *AuditHandler) RegisterRoutes(router *mux.Router) {
	authn := middleware.Auth(h.tokens)
	adminOnly := middleware.RequirePermission(auth.PermUsersManage)

	router.HandleFunc("/api/audit-logs", authn(adminOnly(h.ListAuditLogs))).Methods("GET")
}
