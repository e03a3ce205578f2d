package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// ApproveStockCountCommand represents the command to approve a submitted count
type ApproveStockCountCommand struct {
	StockCountID uint
	ActorID      uint
}

// ApproveStockCountHandler handles approve stock count command
type ApproveStockCountHandler struct {
	repo domain.StockCountRepository
}

// NewApproveStockCountHandler creates a new approve stock count handler
func NewApproveStockCountHandler(repo domain.StockCountRepository) *ApproveStockCountHandler {
	return &ApproveStockCountHandler{repo: repo}
}

// Handle executes the approve stock count command
func (h *ApproveStockCountHandler) Handle(ctx context.Context, cmd ApproveStockCountCommand) (*domain.StockCount, error) {
	if cmd.StockCountID == 0 {
		return nil, fmt.Errorf("stock_count_id is required")
	}

	sc, err := h.repo.FindByID(ctx, cmd.StockCountID)
	if err != nil {
		return nil, err
	}
	switch sc.Status {
	case domain.CountSubmitted:
	case domain.CountCompleted:
		return nil, domain.ErrAlreadyCompleted
	default:
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	sc.Status = domain.CountApproved
	sc.ApprovedBy = &cmd.ActorID
	sc.ApprovedAt = &now

	if err := h.repo.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to approve stock count: %w", err)
	}
	return sc, nil
}
