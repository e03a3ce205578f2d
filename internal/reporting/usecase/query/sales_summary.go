package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tavernhq/backoffice/internal/reporting/domain"
)

// SalesSummaryQuery asks for the sales aggregate over [From, To)
type SalesSummaryQuery struct {
	From time.Time
	To   time.Time
	TopN int
}

// SalesSummaryHandler handles sales summary query
type SalesSummaryHandler struct {
	repo domain.ReportRepository
}

// NewSalesSummaryHandler creates a new sales summary handler
func NewSalesSummaryHandler(repo domain.ReportRepository) *SalesSummaryHandler {
	return &SalesSummaryHandler{repo: repo}
}

// Handle executes the sales summary query
func (h *SalesSummaryHandler) Handle(ctx context.Context, q SalesSummaryQuery) (*domain.SalesSummary, error) {
	if q.From.IsZero() || q.To.IsZero() {
		return nil, fmt.Errorf("from and to are required")
	}
	if q.To.Before(q.From) {
		return nil, fmt.Errorf("to must not be before from")
	}
	if q.TopN <= 0 {
		q.TopN = 10
	}
	if q.TopN > 100 {
		q.TopN = 100
	}

	summary, err := h.repo.SalesSummary(ctx, q.From, q.To, q.TopN)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales summary: %w", err)
	}
	return summary, nil
}
