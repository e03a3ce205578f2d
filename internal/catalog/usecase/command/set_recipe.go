package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
)

// RecipeItem is one ingredient line of a product recipe
type RecipeItem struct {
	IngredientID uint
	QtyPerUnit   decimal.Decimal
}

// SetRecipeCommand replaces a product's recipe wholesale
type SetRecipeCommand struct {
	ProductID uint
	Items     []RecipeItem
}

// SetRecipeHandler handles set recipe command
type SetRecipeHandler struct {
	products domain.ProductRepository
	recipes  domain.RecipeRepository
}

// NewSetRecipeHandler creates a new set recipe handler
func NewSetRecipeHandler(products domain.ProductRepository, recipes domain.RecipeRepository) *SetRecipeHandler {
	return &SetRecipeHandler{products: products, recipes: recipes}
}

// Handle executes the set recipe command
func (h *SetRecipeHandler) Handle(ctx context.Context, cmd SetRecipeCommand) ([]domain.Recipe, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	if _, err := h.products.FindByID(ctx, cmd.ProductID); err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	seen := make(map[uint]bool, len(cmd.Items))
	rows := make([]domain.Recipe, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		if item.IngredientID == 0 {
			return nil, fmt.Errorf("ingredient_id is required on every recipe line")
		}
		if item.QtyPerUnit.IsNegative() {
			return nil, fmt.Errorf("qty_per_unit cannot be negative")
		}
		if seen[item.IngredientID] {
			return nil, fmt.Errorf("duplicate ingredient %d in recipe", item.IngredientID)
		}
		seen[item.IngredientID] = true

		rows = append(rows, domain.Recipe{
			ProductID:    cmd.ProductID,
			IngredientID: item.IngredientID,
			QtyPerUnit:   item.QtyPerUnit,
		})
	}

	if err := h.recipes.ReplaceForProduct(ctx, cmd.ProductID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace recipe: %w", err)
	}

	return rows, nil
}
