package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// Reference-data cache keys invalidated by catalog mutations
const (
	CacheKeyProducts   = "ref:products"
	CacheKeyCategories = "ref:categories"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name       string
	SKU        string
	Price      decimal.Decimal
	CategoryID *uint
	ImageURL   string
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, c *cache.Cache) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, cache: c}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative")
	}

	p := &domain.Product{
		Name:       cmd.Name,
		SKU:        cmd.SKU,
		Price:      cmd.Price,
		CategoryID: cmd.CategoryID,
		ImageURL:   cmd.ImageURL,
		IsActive:   true,
	}

	if err := h.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyProducts)
	return p, nil
}
