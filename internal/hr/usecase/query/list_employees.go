package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// ListEmployeesQuery represents the query to list employees
type ListEmployeesQuery struct {
	Limit  int
	Offset int
}

// ListEmployeesHandler handles list employees query
type ListEmployeesHandler struct {
	repo domain.EmployeeRepository
}

// NewListEmployeesHandler creates a new list employees handler
func NewListEmployeesHandler(repo domain.EmployeeRepository) *ListEmployeesHandler {
	return &ListEmployeesHandler{repo: repo}
}

// Handle executes the list employees query
func (h *ListEmployeesHandler) Handle(ctx context.Context, q ListEmployeesQuery) ([]domain.Employee, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > 500 {
		q.Limit = 500
	}

	employees, err := h.repo.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
