package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/usecase/command"
	"github.com/tavernhq/backoffice/internal/inventory/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

var validate = validator.New()

// InventoryHandler handles HTTP requests for ingredients and the stock ledger
type InventoryHandler struct {
	// Command handlers
	createHandler    *command.CreateIngredientHandler
	updateHandler    *command.UpdateIngredientHandler
	deleteHandler    *command.DeleteIngredientHandler
	addStockHandler  *command.AddStockHandler
	adjustHandler    *command.AdjustStockHandler
	recomputeHandler *command.RecomputeStockHandler

	// Query handlers
	getHandler       *query.GetIngredientHandler
	listHandler      *query.ListIngredientsHandler
	movementsHandler *query.ListMovementsHandler
	lowStockHandler  *query.LowStockHandler

	movementCounter *prometheus.CounterVec
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	createHandler *command.CreateIngredientHandler,
	updateHandler *command.UpdateIngredientHandler,
	deleteHandler *command.DeleteIngredientHandler,
	addStockHandler *command.AddStockHandler,
	adjustHandler *command.AdjustStockHandler,
	recomputeHandler *command.RecomputeStockHandler,
	getHandler *query.GetIngredientHandler,
	listHandler *query.ListIngredientsHandler,
	movementsHandler *query.ListMovementsHandler,
	lowStockHandler *query.LowStockHandler,
) *InventoryHandler {
	movementCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_stock_movements_total",
			Help: "Total number of stock movements recorded",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(movementCounter)

	return &InventoryHandler{
		createHandler:    createHandler,
		updateHandler:    updateHandler,
		deleteHandler:    deleteHandler,
		addStockHandler:  addStockHandler,
		adjustHandler:    adjustHandler,
		recomputeHandler: recomputeHandler,
		getHandler:       getHandler,
		listHandler:      listHandler,
		movementsHandler: movementsHandler,
		lowStockHandler:  lowStockHandler,
		movementCounter:  movementCounter,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type createIngredientRequest struct {
	Name        string          `json:"name" validate:"required"`
	Unit        string          `json:"unit"`
	Stock       decimal.Decimal `json:"current_stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	SupplierID  *uint           `json:"supplier_id"`
}

// CreateIngredient handles POST /api/ingredients
func (h *InventoryHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req createIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	ing, err := h.createHandler.Handle(r.Context(), command.CreateIngredientCommand{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.Stock,
		MinStock:     req.MinStock,
		CostPerUnit:  req.CostPerUnit,
		SupplierID:   req.SupplierID,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create ingredient")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Ingredient created successfully",
		Data:    ing,
	})
}

// GetIngredient handles GET /api/ingredients/{id}
func (h *InventoryHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ing, err := h.getHandler.Handle(r.Context(), query.GetIngredientQuery{IngredientID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Ingredient not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: ing})
}

// ListIngredients handles GET /api/ingredients
func (h *InventoryHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	ingredients, err := h.listHandler.Handle(r.Context(), query.ListIngredientsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list ingredients")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list ingredients"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: ingredients})
}

type updateIngredientRequest struct {
	Name        *string          `json:"name"`
	Unit        *string          `json:"unit"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	SupplierID  *uint            `json:"supplier_id"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateIngredient handles PUT /api/ingredients/{id}
func (h *InventoryHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	ing, err := h.updateHandler.Handle(r.Context(), command.UpdateIngredientCommand{
		IngredientID: id,
		Name:         req.Name,
		Unit:         req.Unit,
		MinStock:     req.MinStock,
		CostPerUnit:  req.CostPerUnit,
		SupplierID:   req.SupplierID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Ingredient updated successfully", Data: ing})
}

// DeleteIngredient handles DELETE /api/ingredients/{id}
func (h *InventoryHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteIngredientCommand{IngredientID: id}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Ingredient deleted successfully"})
}

type addStockRequest struct {
	Quantity decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Supplier *uint            `json:"supplier_id"`
	Notes    string           `json:"notes"`
}

// AddStock handles POST /api/ingredients/{id}/stock-in
func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req addStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	entry, err := h.addStockHandler.Handle(r.Context(), command.AddStockCommand{
		IngredientID: id,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		SupplierID:   req.Supplier,
		Notes:        req.Notes,
		ActorID:      actorID(r),
	})
	if err != nil {
		respondMovementError(w, r, err)
		return
	}

	h.movementCounter.WithLabelValues(string(domain.MovementIn)).Inc()
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Stock received", Data: entry})
}

type adjustStockRequest struct {
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Direction string          `json:"direction" validate:"required,oneof=increase decrease"`
	Reason    string          `json:"reason" validate:"required"`
}

// AdjustStock handles POST /api/ingredients/{id}/adjust
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	entry, err := h.adjustHandler.Handle(r.Context(), command.AdjustStockCommand{
		IngredientID: id,
		Quantity:     req.Quantity,
		Direction:    domain.AdjustmentDirection(req.Direction),
		Reason:       req.Reason,
		ActorID:      actorID(r),
	})
	if err != nil {
		respondMovementError(w, r, err)
		return
	}

	h.movementCounter.WithLabelValues(string(domain.MovementAdjustment)).Inc()
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Stock adjusted", Data: entry})
}

// ListMovements handles GET /api/ingredients/{id}/movements
func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	movements, err := h.movementsHandler.Handle(r.Context(), query.ListMovementsQuery{IngredientID: id, Limit: limit})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list movements"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: movements})
}

type recomputeRequest struct {
	IngredientID *uint `json:"ingredient_id"`
}

// RecomputeStock handles POST /api/inventory/recompute
func (h *InventoryHandler) RecomputeStock(w http.ResponseWriter, r *http.Request) {
	var req recomputeRequest
	if r.Body != nil {
		// Empty body means recompute everything
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.recomputeHandler.Handle(r.Context(), command.RecomputeStockCommand{IngredientID: req.IngredientID}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Stock recompute failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock recomputed from ledger"})
}

// LowStock handles GET /api/inventory/low-stock
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.lowStockHandler.Handle(r.Context(), query.LowStockQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list low stock")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list low stock"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: ingredients})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	staff := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleStaff)
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/ingredients", staff(h.ListIngredients)).Methods("GET")
	router.HandleFunc("/api/ingredients", manager(h.CreateIngredient)).Methods("POST")
	router.HandleFunc("/api/ingredients/{id}", staff(h.GetIngredient)).Methods("GET")
	router.HandleFunc("/api/ingredients/{id}", manager(h.UpdateIngredient)).Methods("PUT")
	router.HandleFunc("/api/ingredients/{id}", manager(h.DeleteIngredient)).Methods("DELETE")
	router.HandleFunc("/api/ingredients/{id}/stock-in", manager(h.AddStock)).Methods("POST")
	router.HandleFunc("/api/ingredients/{id}/adjust", manager(h.AdjustStock)).Methods("POST")
	router.HandleFunc("/api/ingredients/{id}/movements", staff(h.ListMovements)).Methods("GET")
	router.HandleFunc("/api/inventory/recompute", manager(h.RecomputeStock)).Methods("POST")
	router.HandleFunc("/api/inventory/low-stock", staff(h.LowStock)).Methods("GET")
}

// RegisterHealthCheck registers the health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Database unavailable"})
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Back office is healthy"})
	}).Methods("GET")
}

func respondMovementError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   insufficient.Error(),
			Data: map[string]string{
				"current_stock": insufficient.Current.String(),
				"requested":     insufficient.Requested.String(),
			},
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Ingredient not found"})
	default:
		logger.Error(r.Context()).Err(err).Msg("Stock movement failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
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

// actorID reads the authenticated user id set by the auth middleware
func actorID(r *http.Request) uint {
	if id, ok := r.Context().Value(auth.UserIDContextKey).(uint); ok {
		return id
	}
	return 0
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
