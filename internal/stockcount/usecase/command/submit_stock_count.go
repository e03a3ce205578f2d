package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// CountLine is one recorded physical count
type CountLine struct {
	IngredientID uint
	CountedQty   decimal.Decimal
}

// SubmitStockCountCommand records counted quantities and moves the session
// to submitted. Re-submitting an already submitted count overwrites its
// lines; approved and completed counts are frozen.
type SubmitStockCountCommand struct {
	StockCountID uint
	Counts       []CountLine
	ActorID      uint
}

// SubmitStockCountHandler handles submit stock count command
type SubmitStockCountHandler struct {
	repo domain.StockCountRepository
}

// NewSubmitStockCountHandler creates a new submit stock count handler
func NewSubmitStockCountHandler(repo domain.StockCountRepository) *SubmitStockCountHandler {
	return &SubmitStockCountHandler{repo: repo}
}

// Handle executes the submit stock count command
func (h *SubmitStockCountHandler) Handle(ctx context.Context, cmd SubmitStockCountCommand) (*domain.StockCount, error) {
	if cmd.StockCountID == 0 {
		return nil, fmt.Errorf("stock_count_id is required")
	}

	sc, err := h.repo.FindByID(ctx, cmd.StockCountID)
	if err != nil {
		return nil, err
	}
	switch sc.Status {
	case domain.CountDraft, domain.CountSubmitted:
	case domain.CountCompleted:
		return nil, domain.ErrAlreadyCompleted
	default:
		return nil, domain.ErrInvalidTransition
	}

	counted := make(map[uint]decimal.Decimal, len(cmd.Counts))
	for _, line := range cmd.Counts {
		if line.CountedQty.IsNegative() {
			return nil, fmt.Errorf("counted quantity cannot be negative")
		}
		if _, dup := counted[line.IngredientID]; dup {
			return nil, fmt.Errorf("duplicate ingredient %d", line.IngredientID)
		}
		counted[line.IngredientID] = line.CountedQty
	}

	for i := range sc.Items {
		qty, ok := counted[sc.Items[i].IngredientID]
		if !ok {
			continue
		}
		delete(counted, sc.Items[i].IngredientID)

		q := qty
		sc.Items[i].CountedQty = &q
		sc.Items[i].Variance = q.Sub(sc.Items[i].SystemQty)
	}
	if len(counted) > 0 {
		return nil, fmt.Errorf("count contains ingredients not in this session")
	}

	// Every line needs a physical count before the session can move on
	for _, item := range sc.Items {
		if item.CountedQty == nil {
			return nil, fmt.Errorf("ingredient %d has not been counted", item.IngredientID)
		}
	}

	now := time.Now()
	sc.Status = domain.CountSubmitted
	sc.SubmittedAt = &now

	if err := h.repo.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to submit stock count: %w", err)
	}
	return sc, nil
}
