package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/customer/domain"
)

// CreateCustomerCommand represents the command to create a customer
type CreateCustomerCommand struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// CreateCustomerHandler handles create customer command
type CreateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewCreateCustomerHandler creates a new create customer handler
func NewCreateCustomerHandler(repo domain.CustomerRepository) *CreateCustomerHandler {
	return &CreateCustomerHandler{repo: repo}
}

// Handle executes the create customer command
func (h *CreateCustomerHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) (*domain.Customer, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	c := &domain.Customer{
		Name:     cmd.Name,
		Phone:    cmd.Phone,
		Email:    cmd.Email,
		Address:  cmd.Address,
		Notes:    cmd.Notes,
		IsActive: true,
	}
	if err := h.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return c, nil
}
