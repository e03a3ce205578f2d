package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/logger"
)

// StockAlertPublisher is the slice of the kafka publisher stock commands
// need. *kafka.Publisher satisfies it and drops events when nil.
type StockAlertPublisher interface {
	PublishStockLow(ctx context.Context, event kafka.StockLowEvent) error
}

// AdjustStockCommand represents a manual stock correction
type AdjustStockCommand struct {
	IngredientID uint
	Quantity     decimal.Decimal
	Direction    domain.AdjustmentDirection
	Reason       string
	ActorID      uint
}

// AdjustStockHandler handles the adjust stock command
type AdjustStockHandler struct {
	ledger      *ledger.Ledger
	ingredients domain.IngredientRepository
	publisher   StockAlertPublisher
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(l *ledger.Ledger, ingredients domain.IngredientRepository, publisher StockAlertPublisher) *AdjustStockHandler {
	return &AdjustStockHandler{ledger: l, ingredients: ingredients, publisher: publisher}
}

// Handle executes the adjust stock command. A decrease that would drive the
// stock negative fails with domain.InsufficientStockError and writes nothing.
func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*domain.StockMovement, error) {
	if cmd.IngredientID == 0 {
		return nil, fmt.Errorf("ingredient_id is required")
	}

	if !cmd.Quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	if cmd.Direction != domain.DirectionIncrease && cmd.Direction != domain.DirectionDecrease {
		return nil, fmt.Errorf("direction must be %q or %q", domain.DirectionIncrease, domain.DirectionDecrease)
	}

	if cmd.Reason == "" {
		return nil, fmt.Errorf("reason is required for adjustments")
	}

	mv := domain.Movement{
		IngredientID:  cmd.IngredientID,
		Type:          domain.MovementAdjustment,
		Direction:     cmd.Direction,
		Quantity:      cmd.Quantity,
		ReferenceType: domain.RefManual,
		Notes:         cmd.Reason,
		ActorID:       cmd.ActorID,
	}

	entry, err := h.ledger.Record(ctx, mv)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	// Any decrease that leaves the ingredient under its minimum raises the
	// reorder alert. Publish failures are logged, never surfaced.
	if cmd.Direction == domain.DirectionDecrease {
		ing, err := h.ingredients.FindByID(ctx, cmd.IngredientID)
		if err == nil && entry.NewStock.LessThan(ing.MinStock) {
			if err := h.publisher.PublishStockLow(ctx, kafka.StockLowEvent{
				IngredientID: ing.ID,
				Name:         ing.Name,
				CurrentStock: entry.NewStock,
				MinStock:     ing.MinStock,
			}); err != nil {
				logger.Error(ctx).Err(err).Uint("ingredient_id", ing.ID).Msg("Failed to publish stock low event")
			}
		}
	}

	return entry, nil
}
