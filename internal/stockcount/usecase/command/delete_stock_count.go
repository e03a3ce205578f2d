package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// DeleteStockCountCommand represents the command to delete a stock count
type DeleteStockCountCommand struct {
	StockCountID uint
}

// DeleteStockCountHandler handles delete stock count command
type DeleteStockCountHandler struct {
	repo domain.StockCountRepository
}

// NewDeleteStockCountHandler creates a new delete stock count handler
func NewDeleteStockCountHandler(repo domain.StockCountRepository) *DeleteStockCountHandler {
	return &DeleteStockCountHandler{repo: repo}
}

// Handle deletes a count session. Completed counts already posted ledger
// adjustments and must stay.
func (h *DeleteStockCountHandler) Handle(ctx context.Context, cmd DeleteStockCountCommand) error {
	if cmd.StockCountID == 0 {
		return fmt.Errorf("stock_count_id is required")
	}

	sc, err := h.repo.FindByID(ctx, cmd.StockCountID)
	if err != nil {
		return err
	}
	if sc.Status == domain.CountCompleted {
		return domain.ErrCannotDeleteCompleted
	}

	if err := h.repo.Delete(ctx, cmd.StockCountID); err != nil {
		return fmt.Errorf("failed to delete stock count: %w", err)
	}
	return nil
}
