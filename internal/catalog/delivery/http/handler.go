package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stockfy/platform/internal/api"
	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	"github.com/stockfy/platform/internal/catalog/usecase/command"
	"github.com/stockfy/platform/internal/catalog/usecase/query"
	invdomain "github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/middleware"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/logger"
)

// CatalogHandler handles HTTP requests for products and categories
type CatalogHandler struct {
	createProductHandler  *command.CreateProductHandler
	updateProductHandler  *command.UpdateProductHandler
	deleteProductHandler  *command.DeleteProductHandler
	createCategoryHandler *command.CreateCategoryHandler

	listProductsHandler   *query.ListProductsHandler
	getProductHandler     *query.GetProductHandler
	listCategoriesHandler *query.ListCategoriesHandler

	recorder auditusecase.Recorder
	tokens   *auth.TokenManager
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createProductHandler *command.CreateProductHandler,
	updateProductHandler *command.UpdateProductHandler,
	deleteProductHandler *command.DeleteProductHandler,
	createCategoryHandler *command.CreateCategoryHandler,
	listProductsHandler *query.ListProductsHandler,
	getProductHandler *query.GetProductHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	recorder auditusecase.Recorder,
	tokens *auth.TokenManager,
) *CatalogHandler {
	return &CatalogHandler{
		createProductHandler:  createProductHandler,
		updateProductHandler:  updateProductHandler,
		deleteProductHandler:  deleteProductHandler,
		createCategoryHandler: createCategoryHandler,
		listProductsHandler:   listProductsHandler,
		getProductHandler:     getProductHandler,
		listCategoriesHandler: listCategoriesHandler,
		recorder:              recorder,
		tokens:                tokens,
	}
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		CategoryID  string  `json:"category_id"`
		UnitPrice   float64 `json:"unit_price"`
		Stock       int     `json:"stock"`
		MinStock    int     `json:"min_stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	product, entries, err := h.createProductHandler.Handle(r.Context(), command.CreateProductCommand{
		TenantID:    middleware.TenantID(r.Context()),
		UserID:      middleware.UserID(r.Context()),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
	})
	if err != nil {
		h.failDomain(w, r, err, "Failed to create product")
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.Created(w, "Product created successfully", product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		CategoryID  *string  `json:"category_id"`
		UnitPrice   *float64 `json:"unit_price"`
		Stock       *int     `json:"stock"`
		MinStock    *int     `json:"min_stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	product, entries, err := h.updateProductHandler.Handle(r.Context(), command.UpdateProductCommand{
		TenantID:    middleware.TenantID(r.Context()),
		UserID:      middleware.UserID(r.Context()),
		ProductID:   mux.Vars(r)["id"],
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
	})
	if err != nil {
		h.failDomain(w, r, err, "Failed to update product")
		return
	}
	if product == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Product not found")
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, entries, err := h.deleteProductHandler.Handle(r.Context(), command.DeleteProductCommand{
		TenantID:  middleware.TenantID(r.Context()),
		UserID:    middleware.UserID(r.Context()),
		ProductID: mux.Vars(r)["id"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to delete product")
		return
	}
	if product == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Product not found")
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listProductsHandler.Handle(r.Context(), query.ListProductsQuery{
		TenantID: middleware.TenantID(r.Context()),
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list products")
		return
	}
	api.OK(w, products)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	details, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{
		TenantID:  middleware.TenantID(r.Context()),
		ProductID: mux.Vars(r)["id"],
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load product")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to load product")
		return
	}
	if details == nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "Product not found")
		return
	}
	api.OK(w, details)
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	category, entries, err := h.createCategoryHandler.Handle(r.Context(), command.CreateCategoryCommand{
		TenantID: middleware.TenantID(r.Context()),
		UserID:   middleware.UserID(r.Context()),
		Name:     req.Name,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	h.recorder.Record(r.Context(), entries)
	api.Created(w, "Category created successfully", category)
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "Failed to list categories")
		return
	}
	api.OK(w, categories)
}

// failDomain maps domain sentinel errors onto error codes
func (h *CatalogHandler) failDomain(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, invdomain.ErrSKUAlreadyExists):
		api.Fail(w, http.StatusBadRequest, api.CodeSKUAlreadyExists, "SKU already exists in this workspace")
	case errors.Is(err, invdomain.ErrSKUGenerationFailed):
		api.Fail(w, http.StatusInternalServerError, api.CodeSKUGeneration, "Could not allocate a free SKU")
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, err.Error())
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	authn := middleware.Auth(h.tokens)
	canWriteProducts := middleware.RequirePermission(auth.PermProductsWrite)
	canDeleteProducts := middleware.RequirePermission(auth.PermProductsDelete)
	canWriteCategories := middleware.RequirePermission(auth.PermCategoriesWrite)

	router.HandleFunc("/api/products", authn(h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products", authn(canWriteProducts(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", authn(h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products/{id}", authn(canWriteProducts(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", authn(canDeleteProducts(h.DeleteProduct))).Methods("DELETE")

	router.HandleFunc("/api/categories", authn(h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories", authn(canWriteCategories(h.CreateCategory))).Methods("POST")
}
