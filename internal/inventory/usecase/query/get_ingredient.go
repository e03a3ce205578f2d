package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
)

// GetIngredientQuery represents the query to get a single ingredient
type GetIngredientQuery struct {
	IngredientID uint
}

// GetIngredientHandler handles get ingredient query
type GetIngredientHandler struct {
	repo domain.IngredientRepository
}

// NewGetIngredientHandler creates a new get ingredient handler
func NewGetIngredientHandler(repo domain.IngredientRepository) *GetIngredientHandler {
	return &GetIngredientHandler{repo: repo}
}

// Handle executes the get ingredient query
func (h *GetIngredientHandler) Handle(ctx context.Context, q GetIngredientQuery) (*domain.Ingredient, error) {
	if q.IngredientID == 0 {
		return nil, fmt.Errorf("ingredient_id is required")
	}

	return h.repo.FindByID(ctx, q.IngredientID)
}
