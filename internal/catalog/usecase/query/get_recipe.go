package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
)

// GetRecipeQuery represents the query to get a product's recipe
type GetRecipeQuery struct {
	ProductID uint
}

// GetRecipeHandler handles get recipe query
type GetRecipeHandler struct {
	repo domain.RecipeRepository
}

// NewGetRecipeHandler creates a new get recipe handler
func NewGetRecipeHandler(repo domain.RecipeRepository) *GetRecipeHandler {
	return &GetRecipeHandler{repo: repo}
}

// Handle executes the get recipe query
func (h *GetRecipeHandler) Handle(ctx context.Context, q GetRecipeQuery) ([]domain.Recipe, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	recipes, err := h.repo.ByProductID(ctx, q.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	return recipes, nil
}
