package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/customer/domain"
)

// DeleteCustomerCommand represents the command to delete a customer
type DeleteCustomerCommand struct {
	CustomerID uint
}

// DeleteCustomerHandler handles delete customer command
type DeleteCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewDeleteCustomerHandler creates a new delete customer handler
func NewDeleteCustomerHandler(repo domain.CustomerRepository) *DeleteCustomerHandler {
	return &DeleteCustomerHandler{repo: repo}
}

// Handle executes the delete customer command. Soft delete; orders keep the
// customer reference.
func (h *DeleteCustomerHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
	if cmd.CustomerID == 0 {
		return fmt.Errorf("customer_id is required")
	}

	if err := h.repo.Delete(ctx, cmd.CustomerID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
