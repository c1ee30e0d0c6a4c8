package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stockfy/platform/internal/api"
	"github.com/stockfy/platform/internal/middleware"
	"github.com/stockfy/platform/internal/notification/usecase"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// NotificationHandler handles HTTP requests for notifications
type NotificationHandler struct {
	listHandler        *usecase.ListNotificationsHandler
	countUnreadHandler *usecase.CountUnreadHandler
	markAllReadHandler *usecase.MarkAllReadHandler
	tokens             *auth.TokenManager
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(
	listHandler *usecase.ListNotificationsHandler,
	countUnreadHandler *usecase.CountUnreadHandler,
	markAllReadHandler *usecase.MarkAllReadHandler,
	tokens *auth.TokenManager,
) *NotificationHandler {
	return &NotificationHandler{
		listHandler:        listHandler,
		countUnreadHandler: countUnreadHandler,
		markAllReadHandler: markAllReadHandler,
		tokens:             tokens,
	}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notifications, err := h.listHandler.Handle(r.Context(), usecase.ListNotificationsQuery{
		TenantID: middleware.TenantID(r.Context()),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list notifications")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list notifications")
		return
	}
	api.OK(w, notifications)
}

// CountUnread handles GET /api/notifications/unread
func (h *NotificationHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	count, err := h.countUnreadHandler.Handle(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to count unread notifications")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to count notifications")
		return
	}
	api.OK(w, map[string]int64{"unread": count})
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.markAllReadHandler.Handle(r.Context(), middleware.TenantID(r.Context())); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to mark notifications read")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to mark notifications read")
		return
	}
	api.RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "All notifications marked as read",
	})
}

// RegisterRoutes registers all notification routes
func (h *NotificationHandler) RegisterRoutes(router *mux.Router) {
	authn := middleware.Auth(h.tokens)

	router.HandleFunc("/api/notifications", authn(h.ListNotifications)).Methods("GET")
	router.HandleFunc("/api/notifications/unread", authn(h.CountUnread)).Methods("GET")
	router.HandleFunc("/api/notifications/read-all", authn(h.MarkAllRead)).Methods("POST")
}
