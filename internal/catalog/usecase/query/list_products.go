package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/internal/catalog/usecase/command"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit  int
	Offset int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, c *cache.Cache) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, cache: c}
}

// Handle executes the list products query. The first page is reference data
// for the POS client and is served from the TTL cache.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > 500 {
		q.Limit = 500
	}

	cacheable := q.Offset == 0 && q.Limit == 100
	if cacheable {
		var cached []domain.Product
		if h.cache.GetJSON(ctx, command.CacheKeyProducts, &cached) {
			return cached, nil
		}
	}

	products, err := h.repo.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if cacheable {
		h.cache.SetJSON(ctx, command.CacheKeyProducts, products)
	}

	return products, nil
}
