package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/catalog/domain"
)

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ProductID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	return h.repo.FindByID(ctx, q.ProductID)
}
