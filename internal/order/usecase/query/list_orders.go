package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	Filter domain.OrderFilter
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Order, error) {
	if q.Filter.Limit <= 0 {
		q.Filter.Limit = 50
	}
	if q.Filter.Limit > 500 {
		q.Filter.Limit = 500
	}
	if q.Filter.From != nil && q.Filter.To != nil && q.Filter.To.Before(*q.Filter.From) {
		return nil, fmt.Errorf("to must not be before from")
	}

	orders, err := h.repo.FindAll(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
