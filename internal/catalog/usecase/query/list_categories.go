package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/internal/catalog/usecase/command"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// ListCategoriesQuery represents the query to list categories
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	repo  domain.CategoryRepository
	cache *cache.Cache
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository, cache *cache.Cache) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo, cache: cache}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ctx context.Context, _ ListCategoriesQuery) ([]domain.Category, error) {
	var cached []domain.Category
	if h.cache.GetJSON(ctx, command.CacheKeyCategories, &cached) {
		return cached, nil
	}

	categories, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	h.cache.SetJSON(ctx, command.CacheKeyCategories, categories)
	return categories, nil
}
