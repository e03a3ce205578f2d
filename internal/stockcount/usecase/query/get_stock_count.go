package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// GetStockCountQuery represents the query to get a stock count with its items
type GetStockCountQuery struct {
	StockCountID uint
}

// GetStockCountHandler handles get stock count query
type GetStockCountHandler struct {
	repo domain.StockCountRepository
}

// NewGetStockCountHandler creates a new get stock count handler
func NewGetStockCountHandler(repo domain.StockCountRepository) *GetStockCountHandler {
	return &GetStockCountHandler{repo: repo}
}

// Handle executes the get stock count query
func (h *GetStockCountHandler) Handle(ctx context.Context, q GetStockCountQuery) (*domain.StockCount, error) {
	if q.StockCountID == 0 {
		return nil, fmt.Errorf("stock_count_id is required")
	}
	return h.repo.FindByID(ctx, q.StockCountID)
}
