package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/customer/domain"
)

// ListCustomersQuery represents the query to search customers
type ListCustomersQuery struct {
	Keyword string
	Limit   int
	Offset  int
}

// ListCustomersHandler handles list customers query
type ListCustomersHandler struct {
	repo domain.CustomerRepository
}

// NewListCustomersHandler creates a new list customers handler
func NewListCustomersHandler(repo domain.CustomerRepository) *ListCustomersHandler {
	return &ListCustomersHandler{repo: repo}
}

// Handle executes the list customers query
func (h *ListCustomersHandler) Handle(ctx context.Context, q ListCustomersQuery) ([]domain.Customer, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}

	customers, err := h.repo.Search(ctx, q.Keyword, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
