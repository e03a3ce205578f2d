package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
)

// AddStockCommand represents the command to receive stock for an ingredient
type AddStockCommand struct {
	IngredientID uint
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	SupplierID   *uint
	Notes        string
	ActorID      uint
}

// AddStockHandler handles the add stock command
type AddStockHandler struct {
	ledger *ledger.Ledger
}

// NewAddStockHandler creates a new add stock handler
func NewAddStockHandler(l *ledger.Ledger) *AddStockHandler {
	return &AddStockHandler{ledger: l}
}

// Handle executes the add stock command
func (h *AddStockHandler) Handle(ctx context.Context, cmd AddStockCommand) (*domain.StockMovement, error) {
	if cmd.IngredientID == 0 {
		return nil, fmt.Errorf("ingredient_id is required")
	}

	if !cmd.Quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	if cmd.UnitCost != nil && cmd.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit_cost cannot be negative")
	}

	mv := domain.Movement{
		IngredientID:  cmd.IngredientID,
		Type:          domain.MovementIn,
		Quantity:      cmd.Quantity,
		ReferenceID:   cmd.SupplierID,
		ReferenceType: domain.RefPurchase,
		UnitCost:      cmd.UnitCost,
		Notes:         cmd.Notes,
		ActorID:       cmd.ActorID,
	}

	entry, err := h.ledger.Record(ctx, mv)
	if err != nil {
		return nil, fmt.Errorf("failed to add stock: %w", err)
	}

	return entry, nil
}
