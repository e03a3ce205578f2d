package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// ListAttendanceQuery represents the query to list an employee's punches
type ListAttendanceQuery struct {
	EmployeeID uint
	Limit      int
	Offset     int
}

// ListAttendanceHandler handles list attendance query
type ListAttendanceHandler struct {
	repo domain.AttendanceRepository
}

// NewListAttendanceHandler creates a new list attendance handler
func NewListAttendanceHandler(repo domain.AttendanceRepository) *ListAttendanceHandler {
	return &ListAttendanceHandler{repo: repo}
}

// Handle executes the list attendance query
func (h *ListAttendanceHandler) Handle(ctx context.Context, q ListAttendanceQuery) ([]domain.Attendance, error) {
	if q.EmployeeID == 0 {
		return nil, fmt.Errorf("employee_id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}

	records, err := h.repo.FindByEmployee(ctx, q.EmployeeID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
