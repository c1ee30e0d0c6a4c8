package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stockfy/platform/internal/api"
	"github.com/stockfy/platform/internal/middleware"
	"github.com/stockfy/platform/internal/report"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// ReportHandler handles HTTP requests for report exports
type ReportHandler struct {
	stockReport *report.StockReportService
	tokens      *auth.TokenManager
}

// NewReportHandler creates a new report handler
func NewReportHandler(stockReport *report.StockReportService, tokens *auth.TokenManager) *ReportHandler {
	return &ReportHandler{stockReport: stockReport, tokens: tokens}
}

// ExportStock handles GET /api/reports/stock
func (h *ReportHandler) ExportStock(w http.ResponseWriter, r *http.Request) {
	payload, filename, err := h.stockReport.Generate(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to generate stock report")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	authn := middleware.Auth(h.tokens)
	canExport := middleware.RequirePermission(auth.PermReportsExport)

	router.HandleFunc("/api/reports/stock", authn(canExport(h.ExportStock))).Methods("GET")
}
