package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// CacheKeyIngredients is the reference-data cache key invalidated by
// ingredient mutations.
const CacheKeyIngredients = "ref:ingredients"

// CreateIngredientCommand represents the command to create an ingredient
type CreateIngredientCommand struct {
	Name         string
	Unit         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	CostPerUnit  decimal.Decimal
	SupplierID   *uint
}

// CreateIngredientHandler handles create ingredient command
type CreateIngredientHandler struct {
	repo  domain.IngredientRepository
	cache *cache.Cache
}

// NewCreateIngredientHandler creates a new create ingredient handler
func NewCreateIngredientHandler(repo domain.IngredientRepository, c *cache.Cache) *CreateIngredientHandler {
	return &CreateIngredientHandler{repo: repo, cache: c}
}

// Handle executes the create ingredient command
func (h *CreateIngredientHandler) Handle(ctx context.Context, cmd CreateIngredientCommand) (*domain.Ingredient, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.CurrentStock.IsNegative() || cmd.MinStock.IsNegative() || cmd.CostPerUnit.IsNegative() {
		return nil, fmt.Errorf("stock and cost values cannot be negative")
	}

	if cmd.Unit == "" {
		cmd.Unit = "unit"
	}

	ing := &domain.Ingredient{
		Name:         cmd.Name,
		Unit:         cmd.Unit,
		CurrentStock: cmd.CurrentStock,
		MinStock:     cmd.MinStock,
		CostPerUnit:  cmd.CostPerUnit,
		SupplierID:   cmd.SupplierID,
		IsActive:     true,
	}

	if err := h.repo.Create(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyIngredients)
	return ing, nil
}
