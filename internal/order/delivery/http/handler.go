package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/order/domain"
	"github.com/tavernhq/backoffice/internal/order/usecase/command"
	"github.com/tavernhq/backoffice/internal/order/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

var validate = validator.New()

// OrderHandler handles HTTP requests for orders and refunds
type OrderHandler struct {
	// Command handlers
	createHandler *command.CreateOrderHandler
	refundHandler *command.RefundOrderHandler

	// Query handlers
	getHandler  *query.GetOrderHandler
	listHandler *query.ListOrdersHandler

	orderCounter  *prometheus.CounterVec
	refundCounter prometheus.Counter
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	refundHandler *command.RefundOrderHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
) *OrderHandler {
	orderCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_orders_total",
			Help: "Total number of orders placed",
		},
		[]string{"payment_method"},
	)
	refundCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_refunds_total",
			Help: "Total number of refunds processed",
		},
	)
	prometheus.MustRegister(orderCounter, refundCounter)

	return &OrderHandler{
		createHandler: createHandler,
		refundHandler: refundHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		orderCounter:  orderCounter,
		refundCounter: refundCounter,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type orderLineRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items         []orderLineRequest `json:"items" validate:"required,min=1,dive"`
	CustomerID    *uint              `json:"customer_id"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cash card qr"`
	Notes         string             `json:"notes"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	lines := make([]command.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, command.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.createHandler.Handle(r.Context(), command.CreateOrderCommand{
		Items:         lines,
		CustomerID:    req.CustomerID,
		Discount:      req.Discount,
		Tax:           req.Tax,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		ActorID:       actorID(r),
	})
	if err != nil {
		respondOrderError(w, r, err)
		return
	}

	h.orderCounter.WithLabelValues(order.PaymentMethod).Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

type refundOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" validate:"required"`
}

// RefundOrder handles POST /api/orders/{id}/refund
func (h *OrderHandler) RefundOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req refundOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	order, err := h.refundHandler.Handle(r.Context(), command.RefundOrderCommand{
		OrderID: id,
		Amount:  req.Amount,
		Reason:  req.Reason,
		ActorID: actorID(r),
	})
	if err != nil {
		respondOrderError(w, r, err)
		return
	}

	h.refundCounter.Inc()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Refund processed", Data: order})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{OrderID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	orders, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{Filter: filter})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	staff := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleStaff)
	cashier := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier)
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/orders", staff(h.ListOrders)).Methods("GET")
	router.HandleFunc("/api/orders", cashier(h.CreateOrder)).Methods("POST")
	router.HandleFunc("/api/orders/{id}", staff(h.GetOrder)).Methods("GET")
	router.HandleFunc("/api/orders/{id}/refund", manager(h.RefundOrder)).Methods("POST")
}

func parseOrderFilter(r *http.Request) (domain.OrderFilter, error) {
	var filter domain.OrderFilter
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}
	if raw := q.Get("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, errors.New("invalid customer_id")
		}
		cid := uint(id)
		filter.CustomerID = &cid
	}
	if raw := q.Get("payment_status"); raw != "" {
		status := domain.PaymentStatus(raw)
		filter.PaymentStatus = &status
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	return filter, nil
}

func respondOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *inventorydomain.InsufficientStockError
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
	case errors.Is(err, domain.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
	case errors.Is(err, domain.ErrAlreadyRefunded), errors.Is(err, domain.ErrRefundExceedsTotal):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg("Order operation failed")
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
