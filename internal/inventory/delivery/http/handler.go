package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stockfy/platform/internal/api"
	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/usecase/command"
	"github.com/stockfy/platform/internal/inventory/usecase/query"
	"github.com/stockfy/platform/internal/middleware"
	notifusecase "github.com/stockfy/platform/internal/notification/usecase"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// InventoryHandler handles HTTP requests for variants and the stock ledger
type InventoryHandler struct {
	createVariantHandler  *command.CreateVariantHandler
	updateVariantHandler  *command.UpdateVariantHandler
	deleteVariantHandler  *command.DeleteVariantHandler
	createMovementHandler *command.CreateMovementHandler

	listVariantsHandler  *query.ListVariantsHandler
	listMovementsHandler *query.ListMovementsHandler
	suggestSKUHandler    *query.SuggestSKUHandler
	dashboardHandler     *query.DashboardHandler

	recorder auditusecase.Recorder
	notifier *notifusecase.Notifier
	tokens   *auth.TokenManager
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	createVariantHandler *command.CreateVariantHandler,
	updateVariantHandler *command.UpdateVariantHandler,
	deleteVariantHandler *command.DeleteVariantHandler,
	createMovementHandler *command.CreateMovementHandler,
	listVariantsHandler *query.ListVariantsHandler,
	listMovementsHandler *query.ListMovementsHandler,
	suggestSKUHandler *query.SuggestSKUHandler,
	dashboardHandler *query.DashboardHandler,
	recorder auditusecase.Recorder,
	notifier *notifusecase.Notifier,
	tokens *auth.TokenManager,
) *InventoryHandler {
	return &InventoryHandler{
		createVariantHandler:  createVariantHandler,
		updateVariantHandler:  updateVariantHandler,
		deleteVariantHandler:  deleteVariantHandler,
		createMovementHandler: createMovementHandler,
		listVariantsHandler:   listVariantsHandler,
		listMovementsHandler:  listMovementsHandler,
		suggestSKUHandler:     suggestSKUHandler,
		dashboardHandler:      dashboardHandler,
		recorder:              recorder,
		notifier:              notifier,
		tokens:                tokens,
	}
}

// CreateVariant handles POST /api/variants
func (h *InventoryHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  string             `json:"product_id"`
		SKU        string             `json:"sku"`
		Attributes []domain.Attribute `json:"attributes"`
		Stock      int                `json:"stock"`
		MinStock   int                `json:"min_stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	variant, entries, err := h.createVariantHandler.Handle(r.Context(), command.CreateVariantCommand{
		TenantID:   middleware.TenantID(r.Context()),
		UserID:     middleware.UserID(r.Context()),
		ProductID:  req.ProductID,
		SKU:        req.SKU,
		Attributes: req.Attributes,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
	})
	if err != nil {
		h.failDomain(w, r, err, "Failed to create variant")
		return
	}
	if variant == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Product not found")
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.Created(w, "Variant created successfully", variant)
}

// UpdateVariant handles PUT /api/variants/{id}
func (h *InventoryHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SKU              *string            `json:"sku"`
		Stock            *int               `json:"stock"`
		MinStock         *int               `json:"min_stock"`
		Attributes       []domain.Attribute `json:"attributes"`
		ConfirmSKUChange bool               `json:"confirm_sku_change"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	variant, entries, err := h.updateVariantHandler.Handle(r.Context(), command.UpdateVariantCommand{
		TenantID:         middleware.TenantID(r.Context()),
		UserID:           middleware.UserID(r.Context()),
		VariantID:        mux.Vars(r)["id"],
		SKU:              req.SKU,
		Stock:            req.Stock,
		MinStock:         req.MinStock,
		Attributes:       req.Attributes,
		ConfirmSKUChange: req.ConfirmSKUChange,
	})
	if err != nil {
		h.failDomain(w, r, err, "Failed to update variant")
		return
	}
	if variant == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Variant not found")
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Variant updated successfully",
		Data:    variant,
	})
}

// DeleteVariant handles DELETE /api/variants/{id}
func (h *InventoryHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	variant, entries, err := h.deleteVariantHandler.Handle(r.Context(), command.DeleteVariantCommand{
		TenantID:  middleware.TenantID(r.Context()),
		UserID:    middleware.UserID(r.Context()),
		VariantID: mux.Vars(r)["id"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete variant")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to delete variant")
		return
	}
	if variant == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Variant not found")
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Variant deleted successfully",
	})
}

// ListVariants handles GET /api/variants
func (h *InventoryHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.listVariantsHandler.Handle(r.Context(), query.ListVariantsQuery{
		TenantID:  middleware.TenantID(r.Context()),
		ProductID: r.URL.Query().Get("product_id"),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list variants")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list variants")
		return
	}
	api.OK(w, variants)
}

// SuggestSKU handles POST /api/variants/suggest-sku
func (h *InventoryHandler) SuggestSKU(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  string             `json:"product_id"`
		Attributes []domain.Attribute `json:"attributes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	suggestion, err := h.suggestSKUHandler.Handle(r.Context(), query.SuggestSKUQuery{
		TenantID:   middleware.TenantID(r.Context()),
		ProductID:  req.ProductID,
		Attributes: req.Attributes,
	})
	if err != nil {
		h.failDomain(w, r, err, "Failed to suggest SKU")
		return
	}
	if suggestion == "" {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Product not found")
		return
	}

	api.OK(w, map[string]string{"sku": suggestion})
}

// CreateMovement handles POST /api/movements
func (h *InventoryHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VariantID string `json:"variant_id"`
		Type      string `json:"type"`
		Quantity  int    `json:"quantity"`
		Note      string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	movement, entries, err := h.createMovementHandler.Handle(r.Context(), command.CreateMovementCommand{
		TenantID:  middleware.TenantID(r.Context()),
		UserID:    middleware.UserID(r.Context()),
		VariantID: req.VariantID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Note:      req.Note,
	})
	if err != nil {
		h.failDomain(w, r, err, "Failed to record movement")
		return
	}
	if movement == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Variant not found")
		return
	}

	h.recorder.Record(r.Context(), entries)

	if movement.Type == domain.MovementOut && movement.Variant != nil && movement.Variant.IsLowStock() {
		h.notifier.NotifyLowStock(r.Context(),
			movement.TenantID,
			movement.Variant.SKU,
			movement.Variant.Stock,
			movement.Variant.MinStock,
		)
	}

	api.Created(w, "Movement recorded successfully", movement)
}

// ListMovements handles GET /api/movements
func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.listMovementsHandler.Handle(r.Context(), query.ListMovementsQuery{
		TenantID: middleware.TenantID(r.Context()),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list movements")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list movements")
		return
	}
	api.OK(w, movements)
}

// DashboardSummary handles GET /api/dashboard/summary
func (h *InventoryHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardHandler.Summary(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to compute dashboard summary")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to compute summary")
		return
	}
	api.OK(w, summary)
}

// DashboardLive handles GET /api/dashboard/live
func (h *InventoryHandler) DashboardLive(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardHandler.LiveMetrics(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to compute live metrics")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to compute live metrics")
		return
	}
	api.OK(w, metrics)
}

// DashboardCharts handles GET /api/dashboard/charts
func (h *InventoryHandler) DashboardCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.dashboardHandler.Charts(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to compute charts")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to compute charts")
		return
	}
	api.OK(w, charts)
}

// DashboardActivity handles GET /api/dashboard/activity
func (h *InventoryHandler) DashboardActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.dashboardHandler.RecentActivity(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load recent activity")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to load recent activity")
		return
	}
	api.OK(w, activity)
}

// failDomain maps domain sentinel errors onto error codes
func (h *InventoryHandler) failDomain(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrStockNegative):
		api.Fail(w, http.StatusBadRequest, api.CodeStockNegative, "Movement would drive stock below zero")
	case errors.Is(err, domain.ErrSKUAlreadyExists):
		api.Fail(w, http.StatusBadRequest, api.CodeSKUAlreadyExists, "SKU already exists in this workspace")
	case errors.Is(err, domain.ErrSKUConfirmRequired):
		api.Fail(w, http.StatusBadRequest, api.CodeSKUConfirmRequired, "Changing the SKU requires confirmation")
	case errors.Is(err, domain.ErrSKUGenerationFailed):
		api.Fail(w, http.StatusInternalServerError, api.CodeSKUGeneration, "Could not allocate a free SKU")
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, err.Error())
	}
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	authn := middleware.Auth(h.tokens)
	canWrite := middleware.RequirePermission(auth.PermVariantsWrite)
	canDelete := middleware.RequirePermission(auth.PermVariantsDelete)
	canMove := middleware.RequirePermission(auth.PermMovementsWrite)

	router.HandleFunc("/api/variants", authn(h.ListVariants)).Methods("GET")
	router.HandleFunc("/api/variants", authn(canWrite(h.CreateVariant))).Methods("POST")
	router.HandleFunc("/api/variants/suggest-sku", authn(canWrite(h.SuggestSKU))).Methods("POST")
	router.HandleFunc("/api/variants/{id}", authn(canWrite(h.UpdateVariant))).Methods("PUT")
	router.HandleFunc("/api/variants/{id}", authn(canDelete(h.DeleteVariant))).Methods("DELETE")

	router.HandleFunc("/api/movements", authn(h.ListMovements)).Methods("GET")
	router.HandleFunc("/api/movements", authn(canMove(h.CreateMovement))).Methods("POST")

	router.HandleFunc("/api/dashboard/summary", authn(h.DashboardSummary)).Methods("GET")
	router.HandleFunc("/api/dashboard/live", authn(h.DashboardLive)).Methods("GET")
	router.HandleFunc("/api/dashboard/charts", authn(h.DashboardCharts)).Methods("GET")
	router.HandleFunc("/api/dashboard/activity", authn(h.DashboardActivity)).Methods("GET")
}
