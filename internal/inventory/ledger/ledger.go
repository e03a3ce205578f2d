// Package ledger maintains ingredient stock levels and their append-only
// movement log. All writes to Ingredient.CurrentStock go through here.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/pkg/logger"
)

// Ledger records stock movements and repairs drift by replaying the log
type Ledger struct {
	repo domain.LedgerRepository
}

// New creates a ledger over the given repository
func New(repo domain.LedgerRepository) *Ledger {
	return &Ledger{repo: repo}
}

// Record applies a single movement in its own transaction
func (l *Ledger) Record(ctx context.Context, mv domain.Movement) (*domain.StockMovement, error) {
	var out *domain.StockMovement
	err := l.repo.InTx(ctx, func(store domain.LedgerStore) error {
		var err error
		out, err = Apply(ctx, store, mv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Apply validates mv and writes it through an already-open store. Callers
// that need several movements plus other writes to commit together (order
// fulfillment, stock count completion) call this inside their own
// transaction. The ingredient row stays locked until that transaction ends,
// so the read-validate-write below is not a check-then-act race.
func Apply(ctx context.Context, store domain.LedgerStore, mv domain.Movement) (*domain.StockMovement, error) {
	if !mv.Quantity.IsPositive() {
		return nil, fmt.Errorf("movement quantity must be positive, got %s", mv.Quantity.String())
	}

	switch mv.Type {
	case domain.MovementIn, domain.MovementOut:
	case domain.MovementAdjustment:
		if mv.Direction != domain.DirectionIncrease && mv.Direction != domain.DirectionDecrease {
			return nil, fmt.Errorf("adjustment requires a direction")
		}
	default:
		return nil, fmt.Errorf("unknown movement type %q", mv.Type)
	}

	ing, err := store.IngredientForUpdate(ctx, mv.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient %d: %w", mv.IngredientID, err)
	}

	previous := ing.CurrentStock
	newStock := previous.Add(signedDelta(mv))

	if newStock.IsNegative() {
		return nil, &domain.InsufficientStockError{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Current:      previous,
			Requested:    mv.Quantity,
		}
	}

	entry := &domain.StockMovement{
		IngredientID:  ing.ID,
		Type:          mv.Type,
		Quantity:      mv.Quantity,
		PreviousStock: previous,
		NewStock:      newStock,
		ReferenceID:   mv.ReferenceID,
		ReferenceType: mv.ReferenceType,
		Notes:         mv.Notes,
		CreatedBy:     mv.ActorID,
	}

	ing.CurrentStock = newStock

	if mv.UnitCost != nil {
		entry.UnitCost = *mv.UnitCost
		entry.TotalCost = mv.UnitCost.Mul(mv.Quantity)
		if mv.Type == domain.MovementIn {
			ing.AvgCostPerUnit = weightedAvgCost(previous, ing.AvgCostPerUnit, mv.Quantity, *mv.UnitCost)
		}
	}

	if err := store.UpdateIngredientStock(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to update ingredient stock: %w", err)
	}

	if err := store.AppendMovement(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append movement: %w", err)
	}

	return entry, nil
}

// Recompute replays the full movement history of one ingredient in
// chronological order (ties broken by movement id) and overwrites the stored
// stock. Used to repair drift.
func (l *Ledger) Recompute(ctx context.Context, ingredientID uint) error {
	return l.repo.InTx(ctx, func(store domain.LedgerStore) error {
		ing, err := store.IngredientForUpdate(ctx, ingredientID)
		if err != nil {
			return fmt.Errorf("failed to load ingredient %d: %w", ingredientID, err)
		}

		movements, err := store.MovementsAsc(ctx, ingredientID)
		if err != nil {
			return fmt.Errorf("failed to load movements: %w", err)
		}

		if len(movements) == 0 {
			return nil
		}

		// Baseline is the first movement's previous_stock so pre-ledger
		// opening balances survive the replay.
		running := movements[0].PreviousStock
		for _, mv := range movements {
			running = running.Add(replayDelta(mv))
		}

		if running.Equal(ing.CurrentStock) {
			return nil
		}

		logger.Warn(ctx).
			Uint("ingredient_id", ingredientID).
			Str("stored", ing.CurrentStock.String()).
			Str("recomputed", running.String()).
			Msg("Stock drift detected, overwriting from ledger")

		ing.CurrentStock = running
		return store.UpdateIngredientStock(ctx, ing)
	})
}

// RecomputeAll replays every ingredient's history
func (l *Ledger) RecomputeAll(ctx context.Context) error {
	ids, err := l.repo.IngredientIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list ingredients: %w", err)
	}

	for _, id := range ids {
		if err := l.Recompute(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Movements lists an ingredient's movements, most recent first
func (l *Ledger) Movements(ctx context.Context, ingredientID uint, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return l.repo.MovementsByIngredient(ctx, ingredientID, limit)
}

func signedDelta(mv domain.Movement) decimal.Decimal {
	switch mv.Type {
	case domain.MovementIn:
		return mv.Quantity
	case domain.MovementOut:
		return mv.Quantity.Neg()
	default: // adjustment
		if mv.Direction == domain.DirectionDecrease {
			return mv.Quantity.Neg()
		}
		return mv.Quantity
	}
}

// replayDelta re-derives the signed delta of a persisted movement. For
// adjustments the direction lives in the snapshots.
func replayDelta(mv domain.StockMovement) decimal.Decimal {
	switch mv.Type {
	case domain.MovementIn:
		return mv.Quantity
	case domain.MovementOut:
		return mv.Quantity.Neg()
	default:
		if mv.NewStock.LessThan(mv.PreviousStock) {
			return mv.Quantity.Neg()
		}
		return mv.Quantity
	}
}

func weightedAvgCost(prevQty, prevAvg, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := prevQty.Add(inQty)
	if !total.IsPositive() {
		return inCost
	}
	return prevQty.Mul(prevAvg).Add(inQty.Mul(inCost)).DivRound(total, 4)
}
