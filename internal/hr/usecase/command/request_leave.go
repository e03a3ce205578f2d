package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// RequestLeaveCommand represents the command to file a leave request
type RequestLeaveCommand struct {
	EmployeeID uint
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// RequestLeaveHandler handles request leave command
type RequestLeaveHandler struct {
	employees domain.EmployeeRepository
	leaves    domain.LeaveRepository
}

// NewRequestLeaveHandler creates a new request leave handler
func NewRequestLeaveHandler(employees domain.EmployeeRepository, leaves domain.LeaveRepository) *RequestLeaveHandler {
	return &RequestLeaveHandler{employees: employees, leaves: leaves}
}

// Handle executes the request leave command
func (h *RequestLeaveHandler) Handle(ctx context.Context, cmd RequestLeaveCommand) (*domain.LeaveRequest, error) {
	if cmd.EmployeeID == 0 {
		return nil, fmt.Errorf("employee_id is required")
	}
	if cmd.Type == "" {
		return nil, fmt.Errorf("type is required")
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return nil, domain.ErrInvalidTimeRange
	}

	if _, err := h.employees.FindByID(ctx, cmd.EmployeeID); err != nil {
		return nil, err
	}

	lr := &domain.LeaveRequest{
		EmployeeID: cmd.EmployeeID,
		Type:       cmd.Type,
		StartDate:  cmd.StartDate,
		EndDate:    cmd.EndDate,
		Reason:     cmd.Reason,
		Status:     domain.LeavePending,
	}
	if err := h.leaves.Create(ctx, lr); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}
