package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tavernhq/backoffice/internal/catalog/usecase/command"
	"github.com/tavernhq/backoffice/internal/catalog/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

var validate = validator.New()

// CatalogHandler handles HTTP requests for the menu: categories, products
// and their recipes
type CatalogHandler struct {
	// Command handlers
	createProductHandler  *command.CreateProductHandler
	updateProductHandler  *command.UpdateProductHandler
	deleteProductHandler  *command.DeleteProductHandler
	setRecipeHandler      *command.SetRecipeHandler
	createCategoryHandler *command.CreateCategoryHandler

	// Query handlers
	getProductHandler     *query.GetProductHandler
	listProductsHandler   *query.ListProductsHandler
	listCategoriesHandler *query.ListCategoriesHandler
	getRecipeHandler      *query.GetRecipeHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createProductHandler *command.CreateProductHandler,
	updateProductHandler *command.UpdateProductHandler,
	deleteProductHandler *command.DeleteProductHandler,
	setRecipeHandler *command.SetRecipeHandler,
	createCategoryHandler *command.CreateCategoryHandler,
	getProductHandler *query.GetProductHandler,
	listProductsHandler *query.ListProductsHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	getRecipeHandler *query.GetRecipeHandler,
) *CatalogHandler {
	return &CatalogHandler{
		createProductHandler:  createProductHandler,
		updateProductHandler:  updateProductHandler,
		deleteProductHandler:  deleteProductHandler,
		setRecipeHandler:      setRecipeHandler,
		createCategoryHandler: createCategoryHandler,
		getProductHandler:     getProductHandler,
		listProductsHandler:   listProductsHandler,
		listCategoriesHandler: listCategoriesHandler,
		getRecipeHandler:      getRecipeHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type createProductRequest struct {
	Name       string          `json:"name" validate:"required"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price" validate:"required"`
	CategoryID *uint           `json:"category_id"`
	ImageURL   string          `json:"image_url"`
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	p, err := h.createProductHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    p,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ProductID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: p})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.listProductsHandler.Handle(r.Context(), query.ListProductsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

type updateProductRequest struct {
	Name       *string          `json:"name"`
	SKU        *string          `json:"sku"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *uint            `json:"category_id"`
	ImageURL   *string          `json:"image_url"`
	IsActive   *bool            `json:"is_active"`
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	p, err := h.updateProductHandler.Handle(r.Context(), command.UpdateProductCommand{
		ProductID:  id,
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		IsActive:   req.IsActive,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product updated successfully", Data: p})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteProductHandler.Handle(r.Context(), command.DeleteProductCommand{ProductID: id}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

type recipeItemRequest struct {
	IngredientID uint            `json:"ingredient_id" validate:"required"`
	QtyPerUnit   decimal.Decimal `json:"qty_per_unit" validate:"required"`
}

type setRecipeRequest struct {
	Items []recipeItemRequest `json:"items" validate:"required,dive"`
}

// SetRecipe handles PUT /api/products/{id}/recipe
func (h *CatalogHandler) SetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req setRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	items := make([]command.RecipeItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, command.RecipeItem{
			IngredientID: item.IngredientID,
			QtyPerUnit:   item.QtyPerUnit,
		})
	}

	rows, err := h.setRecipeHandler.Handle(r.Context(), command.SetRecipeCommand{ProductID: id, Items: items})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Recipe updated successfully", Data: rows})
}

// GetRecipe handles GET /api/products/{id}/recipe
func (h *CatalogHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.getRecipeHandler.Handle(r.Context(), query.GetRecipeQuery{ProductID: id})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load recipe")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load recipe"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: rows})
}

type createCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	cat, err := h.createCategoryHandler.Handle(r.Context(), command.CreateCategoryCommand{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    cat,
	})
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(r.Context(), query.ListCategoriesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	staff := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleStaff)
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/products", staff(h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products", manager(h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", staff(h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products/{id}", manager(h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", manager(h.DeleteProduct)).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/recipe", staff(h.GetRecipe)).Methods("GET")
	router.HandleFunc("/api/products/{id}/recipe", manager(h.SetRecipe)).Methods("PUT")
	router.HandleFunc("/api/categories", staff(h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories", manager(h.CreateCategory)).Methods("POST")
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
