package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/tavernhq/backoffice/internal/customer/usecase/command"
	"github.com/tavernhq/backoffice/internal/customer/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

var validate = validator.New()

// CustomerHandler handles HTTP requests for the customer book
type CustomerHandler struct {
	// Command handlers
	createHandler *command.CreateCustomerHandler
	updateHandler *command.UpdateCustomerHandler
	deleteHandler *command.DeleteCustomerHandler

	// Query handlers
	getHandler  *query.GetCustomerHandler
	listHandler *query.ListCustomersHandler
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	createHandler *command.CreateCustomerHandler,
	updateHandler *command.UpdateCustomerHandler,
	deleteHandler *command.DeleteCustomerHandler,
	getHandler *query.GetCustomerHandler,
	listHandler *query.ListCustomersHandler,
) *CustomerHandler {
	return &CustomerHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	c, err := h.createHandler.Handle(r.Context(), command.CreateCustomerCommand{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create customer")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Customer created successfully", Data: c})
}

// GetCustomer handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.getHandler.Handle(r.Context(), query.GetCustomerQuery{CustomerID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Customer not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: c})
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Phone lookup resolves the single matching record
	if phone := q.Get("phone"); phone != "" {
		c, err := h.getHandler.Handle(r.Context(), query.GetCustomerQuery{Phone: phone})
		if err != nil {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Customer not found"})
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Data: c})
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	customers, err := h.listHandler.Handle(r.Context(), query.ListCustomersQuery{
		Keyword: q.Get("search"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list customers")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list customers"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: customers})
}

type updateCustomerRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	c, err := h.updateHandler.Handle(r.Context(), command.UpdateCustomerCommand{
		CustomerID: id,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Notes:      req.Notes,
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

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Customer updated successfully", Data: c})
}

// DeleteCustomer handles DELETE /api/customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteCustomerCommand{CustomerID: id}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Customer deleted successfully"})
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	staff := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleStaff)
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/customers", staff(h.ListCustomers)).Methods("GET")
	router.HandleFunc("/api/customers", staff(h.CreateCustomer)).Methods("POST")
	router.HandleFunc("/api/customers/{id}", staff(h.GetCustomer)).Methods("GET")
	router.HandleFunc("/api/customers/{id}", staff(h.UpdateCustomer)).Methods("PUT")
	router.HandleFunc("/api/customers/{id}", manager(h.DeleteCustomer)).Methods("DELETE")
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
