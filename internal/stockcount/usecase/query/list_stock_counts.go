package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// ListStockCountsQuery represents the query to list stock counts
type ListStockCountsQuery struct {
	Limit  int
	Offset int
}

// ListStockCountsHandler handles list stock counts query
type ListStockCountsHandler struct {
	repo domain.StockCountRepository
}

// NewListStockCountsHandler creates a new list stock counts handler
func NewListStockCountsHandler(repo domain.StockCountRepository) *ListStockCountsHandler {
	return &ListStockCountsHandler{repo: repo}
}

// Handle executes the list stock counts query
func (h *ListStockCountsHandler) Handle(ctx context.Context, q ListStockCountsQuery) ([]domain.StockCount, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}

	counts, err := h.repo.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock counts: %w", err)
	}
	return counts, nil
}
