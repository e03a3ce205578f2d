package command

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name      string
	SortOrder int
}

// CreateCategoryHandler handles create category command
type CreateCategoryHandler struct {
	repo  domain.CategoryRepository
	cache *cache.Cache
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository, c *cache.Cache) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo, cache: c}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	cat := &domain.Category{
		Name:      cmd.Name,
		SortOrder: cmd.SortOrder,
	}

	if err := h.repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyCategories)
	return cat, nil
}
