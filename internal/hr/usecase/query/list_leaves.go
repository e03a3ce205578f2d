package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// ListLeavesQuery represents the query to list leave requests
type ListLeavesQuery struct {
	Status *domain.LeaveStatus
	Limit  int
	Offset int
}

// ListLeavesHandler handles list leaves query
type ListLeavesHandler struct {
	repo domain.LeaveRepository
}

// NewListLeavesHandler creates a new list leaves handler
func NewListLeavesHandler(repo domain.LeaveRepository) *ListLeavesHandler {
	return &ListLeavesHandler{repo: repo}
}

// Handle executes the list leaves query
func (h *ListLeavesHandler) Handle(ctx context.Context, q ListLeavesQuery) ([]domain.LeaveRequest, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}
	if q.Status != nil {
		switch *q.Status {
		case domain.LeavePending, domain.LeaveApproved, domain.LeaveRejected:
		default:
			return nil, fmt.Errorf("unknown leave status %q", *q.Status)
		}
	}

	requests, err := h.repo.FindAll(ctx, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}
