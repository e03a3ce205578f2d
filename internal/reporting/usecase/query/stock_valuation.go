package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/reporting/domain"
)

// StockValuationQuery asks for the inventory's current book value
type StockValuationQuery struct{}

// StockValuationHandler handles stock valuation query
type StockValuationHandler struct {
	repo domain.ReportRepository
}

// NewStockValuationHandler creates a new stock valuation handler
func NewStockValuationHandler(repo domain.ReportRepository) *StockValuationHandler {
	return &StockValuationHandler{repo: repo}
}

// Handle executes the stock valuation query
func (h *StockValuationHandler) Handle(ctx context.Context, _ StockValuationQuery) (*domain.StockValuation, error) {
	valuation, err := h.repo.StockValuation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock valuation: %w", err)
	}
	return valuation, nil
}
