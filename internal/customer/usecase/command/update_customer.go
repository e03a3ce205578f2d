package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/customer/domain"
)

// UpdateCustomerCommand carries explicit optional fields; nil leaves a field
// unchanged. Purchase stats are not updatable here; they only move with
// orders and refunds.
type UpdateCustomerCommand struct {
	CustomerID uint
	Name       *string
	Phone      *string
	Email      *string
	Address    *string
	Notes      *string
	IsActive   *bool
}

// UpdateCustomerHandler handles update customer command
type UpdateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewUpdateCustomerHandler creates a new update customer handler
func NewUpdateCustomerHandler(repo domain.CustomerRepository) *UpdateCustomerHandler {
	return &UpdateCustomerHandler{repo: repo}
}

// Handle executes the update customer command
func (h *UpdateCustomerHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) (*domain.Customer, error) {
	if cmd.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required")
	}

	c, err := h.repo.FindByID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		c.Name = *cmd.Name
	}
	if cmd.Phone != nil {
		if *cmd.Phone == "" {
			return nil, fmt.Errorf("phone cannot be empty")
		}
		c.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		c.Email = *cmd.Email
	}
	if cmd.Address != nil {
		c.Address = *cmd.Address
	}
	if cmd.Notes != nil {
		c.Notes = *cmd.Notes
	}
	if cmd.IsActive != nil {
		c.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return c, nil
}
