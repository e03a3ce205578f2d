package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// CreateEmployeeCommand represents the command to create an employee
type CreateEmployeeCommand struct {
	Name        string
	Role        string
	PayType     domain.PayType
	HourlyRate  decimal.Decimal
	MonthlyRate decimal.Decimal
}

// CreateEmployeeHandler handles create employee command
type CreateEmployeeHandler struct {
	repo domain.EmployeeRepository
}

// NewCreateEmployeeHandler creates a new create employee handler
func NewCreateEmployeeHandler(repo domain.EmployeeRepository) *CreateEmployeeHandler {
	return &CreateEmployeeHandler{repo: repo}
}

// Handle executes the create employee command
func (h *CreateEmployeeHandler) Handle(ctx context.Context, cmd CreateEmployeeCommand) (*domain.Employee, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	switch cmd.PayType {
	case domain.PayHourly:
		if !cmd.HourlyRate.IsPositive() {
			return nil, fmt.Errorf("hourly_rate must be positive for hourly staff")
		}
	case domain.PayMonthly:
		if !cmd.MonthlyRate.IsPositive() {
			return nil, fmt.Errorf("monthly_rate must be positive for monthly staff")
		}
	default:
		return nil, fmt.Errorf("unknown pay type %q", cmd.PayType)
	}
	if cmd.HourlyRate.IsNegative() || cmd.MonthlyRate.IsNegative() {
		return nil, fmt.Errorf("rates cannot be negative")
	}

	e := &domain.Employee{
		Name:        cmd.Name,
		Role:        cmd.Role,
		PayType:     cmd.PayType,
		HourlyRate:  cmd.HourlyRate,
		MonthlyRate: cmd.MonthlyRate,
		IsActive:    true,
	}
	if err := h.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}
