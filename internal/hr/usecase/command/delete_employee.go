package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// DeleteEmployeeCommand represents the command to delete an employee
type DeleteEmployeeCommand struct {
	EmployeeID uint
}

// DeleteEmployeeHandler handles delete employee command
type DeleteEmployeeHandler struct {
	repo domain.EmployeeRepository
}

// NewDeleteEmployeeHandler creates a new delete employee handler
func NewDeleteEmployeeHandler(repo domain.EmployeeRepository) *DeleteEmployeeHandler {
	return &DeleteEmployeeHandler{repo: repo}
}

// Handle executes the delete employee command. Soft delete; attendance
// history stays attached.
func (h *DeleteEmployeeHandler) Handle(ctx context.Context, cmd DeleteEmployeeCommand) error {
	if cmd.EmployeeID == 0 {
		return fmt.Errorf("employee_id is required")
	}

	if _, err := h.repo.FindByID(ctx, cmd.EmployeeID); err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, cmd.EmployeeID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
