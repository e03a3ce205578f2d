package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ProductID uint
}

// DeleteProductHandler handles delete product command
type DeleteProductHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, c *cache.Cache) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, cache: c}
}

// Handle executes the delete product command. Soft delete; historical order
// items keep referencing the row.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}

	if err := h.repo.Delete(ctx, cmd.ProductID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyProducts)
	return nil
}
