package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/pkg/lock"
)

const recomputeLockTTL = 2 * time.Minute

// RecomputeStockCommand requests a ledger replay for one ingredient or,
// when IngredientID is nil, for all of them.
type RecomputeStockCommand struct {
	IngredientID *uint
}

// RecomputeStockHandler handles the recompute stock command
type RecomputeStockHandler struct {
	ledger *ledger.Ledger
	locker *lock.Locker
}

// NewRecomputeStockHandler creates a new recompute stock handler
func NewRecomputeStockHandler(l *ledger.Ledger, locker *lock.Locker) *RecomputeStockHandler {
	return &RecomputeStockHandler{ledger: l, locker: locker}
}

// Handle executes the recompute. Serialized across instances so two replays
// cannot interleave with each other.
func (h *RecomputeStockHandler) Handle(ctx context.Context, cmd RecomputeStockCommand) error {
	return h.locker.WithLock(ctx, "inventory:recompute", recomputeLockTTL, func() error {
		if cmd.IngredientID != nil {
			if err := h.ledger.Recompute(ctx, *cmd.IngredientID); err != nil {
				return fmt.Errorf("failed to recompute ingredient %d: %w", *cmd.IngredientID, err)
			}
			return nil
		}

		if err := h.ledger.RecomputeAll(ctx); err != nil {
			return fmt.Errorf("failed to recompute stock: %w", err)
		}
		return nil
	})
}
