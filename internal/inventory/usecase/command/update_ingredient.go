package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// UpdateIngredientCommand carries explicit optional fields; nil means leave
// unchanged. CurrentStock is deliberately absent: only the ledger writes it.
type UpdateIngredientCommand struct {
	IngredientID uint
	Name         *string
	Unit         *string
	MinStock     *decimal.Decimal
	CostPerUnit  *decimal.Decimal
	SupplierID   *uint
	IsActive     *bool
}

// UpdateIngredientHandler handles update ingredient command
type UpdateIngredientHandler struct {
	repo  domain.IngredientRepository
	cache *cache.Cache
}

// NewUpdateIngredientHandler creates a new update ingredient handler
func NewUpdateIngredientHandler(repo domain.IngredientRepository, c *cache.Cache) *UpdateIngredientHandler {
	return &UpdateIngredientHandler{repo: repo, cache: c}
}

// Handle executes the update ingredient command
func (h *UpdateIngredientHandler) Handle(ctx context.Context, cmd UpdateIngredientCommand) (*domain.Ingredient, error) {
	if cmd.IngredientID == 0 {
		return nil, fmt.Errorf("ingredient_id is required")
	}

	ing, err := h.repo.FindByID(ctx, cmd.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		ing.Name = *cmd.Name
	}
	if cmd.Unit != nil {
		ing.Unit = *cmd.Unit
	}
	if cmd.MinStock != nil {
		if cmd.MinStock.IsNegative() {
			return nil, fmt.Errorf("min_stock cannot be negative")
		}
		ing.MinStock = *cmd.MinStock
	}
	if cmd.CostPerUnit != nil {
		if cmd.CostPerUnit.IsNegative() {
			return nil, fmt.Errorf("cost_per_unit cannot be negative")
		}
		ing.CostPerUnit = *cmd.CostPerUnit
	}
	if cmd.SupplierID != nil {
		ing.SupplierID = cmd.SupplierID
	}
	if cmd.IsActive != nil {
		ing.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyIngredients)
	return ing, nil
}
