package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// ReviewLeaveCommand approves or rejects a pending leave request
type ReviewLeaveCommand struct {
	LeaveID uint
	Approve bool
	ActorID uint
}

// ReviewLeaveHandler handles review leave command
type ReviewLeaveHandler struct {
	leaves domain.LeaveRepository
}

// NewReviewLeaveHandler creates a new review leave handler
func NewReviewLeaveHandler(leaves domain.LeaveRepository) *ReviewLeaveHandler {
	return &ReviewLeaveHandler{leaves: leaves}
}

// Handle executes the review leave command
func (h *ReviewLeaveHandler) Handle(ctx context.Context, cmd ReviewLeaveCommand) (*domain.LeaveRequest, error) {
	if cmd.LeaveID == 0 {
		return nil, fmt.Errorf("leave_id is required")
	}

	lr, err := h.leaves.FindByID(ctx, cmd.LeaveID)
	if err != nil {
		return nil, err
	}
	if lr.Status != domain.LeavePending {
		return nil, domain.ErrLeaveAlreadyMoved
	}

	now := time.Now()
	if cmd.Approve {
		lr.Status = domain.LeaveApproved
	} else {
		lr.Status = domain.LeaveRejected
	}
	lr.ReviewedBy = &cmd.ActorID
	lr.ReviewedAt = &now

	if err := h.leaves.Update(ctx, lr); err != nil {
		return nil, fmt.Errorf("failed to review leave request: %w", err)
	}

	return lr, nil
}
