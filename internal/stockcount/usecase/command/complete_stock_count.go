package command

import (
	"context"
	"fmt"
	"time"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/internal/stockcount/domain"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/lock"
	"github.com/tavernhq/backoffice/pkg/logger"
)

// StockAlertPublisher is the slice of the kafka publisher completion needs.
// *kafka.Publisher satisfies it and drops events when nil.
type StockAlertPublisher interface {
	PublishStockLow(ctx context.Context, event kafka.StockLowEvent) error
}

// CompleteStockCountCommand represents the command to complete an approved count
type CompleteStockCountCommand struct {
	StockCountID uint
	ActorID      uint
}

// CompleteStockCountHandler handles complete stock count command
type CompleteStockCountHandler struct {
	repo      domain.StockCountRepository
	locker    *lock.Locker
	publisher StockAlertPublisher
}

// NewCompleteStockCountHandler creates a new complete stock count handler
func NewCompleteStockCountHandler(repo domain.StockCountRepository, locker *lock.Locker, publisher StockAlertPublisher) *CompleteStockCountHandler {
	return &CompleteStockCountHandler{repo: repo, locker: locker, publisher: publisher}
}

// Handle completes an approved count: one ledger adjustment per non-zero
// variance, committed in the same transaction as the status flip. The
// distributed lock keeps two operators from completing the same session
// concurrently; the row lock inside makes a second attempt fail cleanly
// even without Redis.
func (h *CompleteStockCountHandler) Handle(ctx context.Context, cmd CompleteStockCountCommand) (*domain.StockCount, error) {
	if cmd.StockCountID == 0 {
		return nil, fmt.Errorf("stock_count_id is required")
	}

	var (
		completed *domain.StockCount
		lowStock  []kafka.StockLowEvent
	)
	err := h.locker.WithLock(ctx, fmt.Sprintf("stock-count:complete:%d", cmd.StockCountID), 2*time.Minute, func() error {
		return h.repo.InTx(ctx, func(store domain.ReconcileStore) error {
			sc, err := store.StockCountForUpdate(ctx, cmd.StockCountID)
			if err != nil {
				return err
			}
			switch sc.Status {
			case domain.CountApproved:
			case domain.CountCompleted:
				return domain.ErrAlreadyCompleted
			default:
				return domain.ErrInvalidTransition
			}

			for _, item := range sc.Items {
				if item.Variance.IsZero() {
					continue
				}

				// Positive variance found more on the shelf than the book
				// said; post it back in. Negative is shrinkage, post it out.
				movementType := inventorydomain.MovementIn
				if item.Variance.IsNegative() {
					movementType = inventorydomain.MovementOut
				}

				entry, err := ledger.Apply(ctx, store.Ledger(), inventorydomain.Movement{
					IngredientID:  item.IngredientID,
					Type:          movementType,
					Quantity:      item.Variance.Abs(),
					ReferenceID:   &sc.ID,
					ReferenceType: inventorydomain.RefStockCount,
					Notes:         "stock count " + sc.CountNo,
					ActorID:       cmd.ActorID,
				})
				if err != nil {
					return err
				}

				// Shrinkage can push an ingredient under its minimum; raise
				// the reorder alert just like any other decrease.
				if movementType == inventorydomain.MovementOut {
					ing, err := store.Ledger().IngredientForUpdate(ctx, item.IngredientID)
					if err != nil {
						return fmt.Errorf("failed to reload ingredient %d: %w", item.IngredientID, err)
					}
					if entry.NewStock.LessThan(ing.MinStock) {
						lowStock = append(lowStock, kafka.StockLowEvent{
							IngredientID: ing.ID,
							Name:         ing.Name,
							CurrentStock: entry.NewStock,
							MinStock:     ing.MinStock,
						})
					}
				}
			}

			now := time.Now()
			sc.Status = domain.CountCompleted
			sc.CompletedAt = &now
			if err := store.UpdateStockCount(ctx, sc); err != nil {
				return fmt.Errorf("failed to complete stock count: %w", err)
			}

			completed = sc
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Events go out only after the transaction commits. Publish failures are
	// logged, never surfaced.
	for _, event := range lowStock {
		if err := h.publisher.PublishStockLow(ctx, event); err != nil {
			logger.Error(ctx).Err(err).Uint("ingredient_id", event.IngredientID).Msg("Failed to publish stock low event")
		}
	}

	return completed, nil
}
