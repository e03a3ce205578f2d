package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// DeleteIngredientCommand represents the command to delete an ingredient
type DeleteIngredientCommand struct {
	IngredientID uint
}

// DeleteIngredientHandler handles delete ingredient command
type DeleteIngredientHandler struct {
	repo  domain.IngredientRepository
	cache *cache.Cache
}

// NewDeleteIngredientHandler creates a new delete ingredient handler
func NewDeleteIngredientHandler(repo domain.IngredientRepository, c *cache.Cache) *DeleteIngredientHandler {
	return &DeleteIngredientHandler{repo: repo, cache: c}
}

// Handle executes the delete ingredient command. Soft delete; the movement
// log stays intact for audit.
func (h *DeleteIngredientHandler) Handle(ctx context.Context, cmd DeleteIngredientCommand) error {
	if cmd.IngredientID == 0 {
		return fmt.Errorf("ingredient_id is required")
	}

	if err := h.repo.Delete(ctx, cmd.IngredientID); err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyIngredients)
	return nil
}
