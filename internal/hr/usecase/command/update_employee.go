package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// UpdateEmployeeCommand carries explicit optional fields; nil leaves a field
// unchanged.
type UpdateEmployeeCommand struct {
	EmployeeID  uint
	Name        *string
	Role        *string
	PayType     *domain.PayType
	HourlyRate  *decimal.Decimal
	MonthlyRate *decimal.Decimal
	IsActive    *bool
}

// UpdateEmployeeHandler handles update employee command
type UpdateEmployeeHandler struct {
	repo domain.EmployeeRepository
}

// NewUpdateEmployeeHandler creates a new update employee handler
func NewUpdateEmployeeHandler(repo domain.EmployeeRepository) *UpdateEmployeeHandler {
	return &UpdateEmployeeHandler{repo: repo}
}

// Handle executes the update employee command
func (h *UpdateEmployeeHandler) Handle(ctx context.Context, cmd UpdateEmployeeCommand) (*domain.Employee, error) {
	if cmd.EmployeeID == 0 {
		return nil, fmt.Errorf("employee_id is required")
	}

	e, err := h.repo.FindByID(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		e.Name = *cmd.Name
	}
	if cmd.Role != nil {
		e.Role = *cmd.Role
	}
	if cmd.PayType != nil {
		switch *cmd.PayType {
		case domain.PayHourly, domain.PayMonthly:
			e.PayType = *cmd.PayType
		default:
			return nil, fmt.Errorf("unknown pay type %q", *cmd.PayType)
		}
	}
	if cmd.HourlyRate != nil {
		if cmd.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("hourly_rate cannot be negative")
		}
		e.HourlyRate = *cmd.HourlyRate
	}
	if cmd.MonthlyRate != nil {
		if cmd.MonthlyRate.IsNegative() {
			return nil, fmt.Errorf("monthly_rate cannot be negative")
		}
		e.MonthlyRate = *cmd.MonthlyRate
	}
	if cmd.IsActive != nil {
		e.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return e, nil
}
