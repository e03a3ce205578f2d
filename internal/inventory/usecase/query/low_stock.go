package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
)

// LowStockQuery lists ingredients under their reorder threshold
type LowStockQuery struct{}

// LowStockHandler handles low stock query
type LowStockHandler struct {
	repo domain.IngredientRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.IngredientRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *LowStockHandler) Handle(ctx context.Context, _ LowStockQuery) ([]domain.Ingredient, error) {
	ingredients, err := h.repo.FindBelowMinStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock ingredients: %w", err)
	}

	return ingredients, nil
}
