package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/stockcount/domain"
	"github.com/tavernhq/backoffice/internal/stockcount/usecase/command"
	"github.com/tavernhq/backoffice/internal/stockcount/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

var validate = validator.New()

// StockCountHandler handles HTTP requests for the count workflow
type StockCountHandler struct {
	// Command handlers
	createHandler   *command.CreateStockCountHandler
	submitHandler   *command.SubmitStockCountHandler
	approveHandler  *command.ApproveStockCountHandler
	completeHandler *command.CompleteStockCountHandler
	deleteHandler   *command.DeleteStockCountHandler

	// Query handlers
	getHandler  *query.GetStockCountHandler
	listHandler *query.ListStockCountsHandler
}

// NewStockCountHandler creates a new stock count handler
func NewStockCountHandler(
	createHandler *command.CreateStockCountHandler,
	submitHandler *command.SubmitStockCountHandler,
	approveHandler *command.ApproveStockCountHandler,
	completeHandler *command.CompleteStockCountHandler,
	deleteHandler *command.DeleteStockCountHandler,
	getHandler *query.GetStockCountHandler,
	listHandler *query.ListStockCountsHandler,
) *StockCountHandler {
	return &StockCountHandler{
		createHandler:   createHandler,
		submitHandler:   submitHandler,
		approveHandler:  approveHandler,
		completeHandler: completeHandler,
		deleteHandler:   deleteHandler,
		getHandler:      getHandler,
		listHandler:     listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type createItemRequest struct {
	IngredientID uint             `json:"ingredient_id" validate:"required"`
	CountedQty   *decimal.Decimal `json:"counted_qty,omitempty"`
}

type createStockCountRequest struct {
	Type  string              `json:"type" validate:"omitempty,oneof=opening closing"`
	Items []createItemRequest `json:"items" validate:"omitempty,dive"`
	Notes string              `json:"notes"`
}

// CreateStockCount handles POST /api/stock-counts
func (h *StockCountHandler) CreateStockCount(w http.ResponseWriter, r *http.Request) {
	var req createStockCountRequest
	if r.Body != nil {
		// Empty body means a closing count over everything
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	items := make([]command.CreateStockCountLine, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, command.CreateStockCountLine{
			IngredientID: item.IngredientID,
			CountedQty:   item.CountedQty,
		})
	}

	sc, err := h.createHandler.Handle(r.Context(), command.CreateStockCountCommand{
		Type:    domain.CountType(req.Type),
		Items:   items,
		Notes:   req.Notes,
		ActorID: actorID(r),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create stock count")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock count created successfully",
		Data:    sc,
	})
}

type countLineRequest struct {
	IngredientID uint            `json:"ingredient_id" validate:"required"`
	CountedQty   decimal.Decimal `json:"counted_qty"`
}

// Counts may be empty when every line was already counted at creation; the
// command still refuses to submit a session with uncounted lines.
type submitStockCountRequest struct {
	Counts []countLineRequest `json:"counts" validate:"omitempty,dive"`
}

// SubmitStockCount handles POST /api/stock-counts/{id}/submit
func (h *StockCountHandler) SubmitStockCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req submitStockCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	counts := make([]command.CountLine, 0, len(req.Counts))
	for _, line := range req.Counts {
		counts = append(counts, command.CountLine{IngredientID: line.IngredientID, CountedQty: line.CountedQty})
	}

	sc, err := h.submitHandler.Handle(r.Context(), command.SubmitStockCountCommand{
		StockCountID: id,
		Counts:       counts,
		ActorID:      actorID(r),
	})
	if err != nil {
		respondCountError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock count submitted", Data: sc})
}

// ApproveStockCount handles POST /api/stock-counts/{id}/approve
func (h *StockCountHandler) ApproveStockCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sc, err := h.approveHandler.Handle(r.Context(), command.ApproveStockCountCommand{
		StockCountID: id,
		ActorID:      actorID(r),
	})
	if err != nil {
		respondCountError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock count approved", Data: sc})
}

// CompleteStockCount handles POST /api/stock-counts/{id}/complete
func (h *StockCountHandler) CompleteStockCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sc, err := h.completeHandler.Handle(r.Context(), command.CompleteStockCountCommand{
		StockCountID: id,
		ActorID:      actorID(r),
	})
	if err != nil {
		respondCountError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock count completed", Data: sc})
}

// DeleteStockCount handles DELETE /api/stock-counts/{id}
func (h *StockCountHandler) DeleteStockCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteStockCountCommand{StockCountID: id}); err != nil {
		respondCountError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock count deleted successfully"})
}

// GetStockCount handles GET /api/stock-counts/{id}
func (h *StockCountHandler) GetStockCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sc, err := h.getHandler.Handle(r.Context(), query.GetStockCountQuery{StockCountID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Stock count not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: sc})
}

// ListStockCounts handles GET /api/stock-counts
func (h *StockCountHandler) ListStockCounts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	counts, err := h.listHandler.Handle(r.Context(), query.ListStockCountsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list stock counts")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list stock counts"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: counts})
}

// RegisterRoutes registers all stock count routes
func (h *StockCountHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	staff := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleStaff)
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/stock-counts", staff(h.ListStockCounts)).Methods("GET")
	router.HandleFunc("/api/stock-counts", staff(h.CreateStockCount)).Methods("POST")
	router.HandleFunc("/api/stock-counts/{id}", staff(h.GetStockCount)).Methods("GET")
	router.HandleFunc("/api/stock-counts/{id}", manager(h.DeleteStockCount)).Methods("DELETE")
	router.HandleFunc("/api/stock-counts/{id}/submit", staff(h.SubmitStockCount)).Methods("POST")
	router.HandleFunc("/api/stock-counts/{id}/approve", manager(h.ApproveStockCount)).Methods("POST")
	router.HandleFunc("/api/stock-counts/{id}/complete", manager(h.CompleteStockCount)).Methods("POST")
}

func respondCountError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *inventorydomain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: insufficient.Error()})
	case errors.Is(err, domain.ErrStockCountNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Stock count not found"})
	case errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrCannotDeleteCompleted),
		errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg("Stock count operation failed")
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
