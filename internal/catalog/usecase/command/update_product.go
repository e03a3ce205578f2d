package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// UpdateProductCommand carries explicit optional fields; nil leaves a field
// unchanged.
type UpdateProductCommand struct {
	ProductID  uint
	Name       *string
	SKU        *string
	Price      *decimal.Decimal
	CategoryID *uint
	ImageURL   *string
	IsActive   *bool
}

// UpdateProductHandler handles update product command
type UpdateProductHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, c *cache.Cache) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, cache: c}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	p, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		p.Name = *cmd.Name
	}
	if cmd.SKU != nil {
		p.SKU = *cmd.SKU
	}
	if cmd.Price != nil {
		if cmd.Price.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative")
		}
		p.Price = *cmd.Price
	}
	if cmd.CategoryID != nil {
		p.CategoryID = cmd.CategoryID
	}
	if cmd.ImageURL != nil {
		p.ImageURL = *cmd.ImageURL
	}
	if cmd.IsActive != nil {
		p.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	h.cache.Invalidate(ctx, CacheKeyProducts)
	return p, nil
}
