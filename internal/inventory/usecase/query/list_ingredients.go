package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/usecase/command"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// ListIngredientsQuery represents the query to list ingredients
type ListIngredientsQuery struct {
	Limit  int
	Offset int
}

// ListIngredientsHandler handles list ingredients query
type ListIngredientsHandler struct {
	repo  domain.IngredientRepository
	cache *cache.Cache
}

// NewListIngredientsHandler creates a new list ingredients handler
func NewListIngredientsHandler(repo domain.IngredientRepository, c *cache.Cache) *ListIngredientsHandler {
	return &ListIngredientsHandler{repo: repo, cache: c}
}

// Handle executes the list ingredients query. The unpaginated first page is
// reference data and is served from the TTL cache.
func (h *ListIngredientsHandler) Handle(ctx context.Context, q ListIngredientsQuery) ([]domain.Ingredient, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > 500 {
		q.Limit = 500
	}

	cacheable := q.Offset == 0 && q.Limit == 100
	if cacheable {
		var cached []domain.Ingredient
		if h.cache.GetJSON(ctx, command.CacheKeyIngredients, &cached) {
			return cached, nil
		}
	}

	ingredients, err := h.repo.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	if cacheable {
		h.cache.SetJSON(ctx, command.CacheKeyIngredients, ingredients)
	}

	return ingredients, nil
}
