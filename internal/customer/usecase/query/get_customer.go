package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/customer/domain"
)

// GetCustomerQuery represents the query to get a customer by id or phone
type GetCustomerQuery struct {
	CustomerID uint
	Phone      string
}

// GetCustomerHandler handles get customer query
type GetCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewGetCustomerHandler creates a new get customer handler
func NewGetCustomerHandler(repo domain.CustomerRepository) *GetCustomerHandler {
	return &GetCustomerHandler{repo: repo}
}

// Handle executes the get customer query
func (h *GetCustomerHandler) Handle(ctx context.Context, q GetCustomerQuery) (*domain.Customer, error) {
	switch {
	case q.CustomerID != 0:
		return h.repo.FindByID(ctx, q.CustomerID)
	case q.Phone != "":
		return h.repo.FindByPhone(ctx, q.Phone)
	default:
		return nil, fmt.Errorf("customer_id or phone is required")
	}
}
