package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tavernhq/backoffice/internal/reporting/domain"
)

// GormReportRepository implements domain.ReportRepository with read-only
// aggregate queries. It owns no tables.
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) SalesSummary(ctx context.Context, from, to time.Time, topN int) (*domain.SalesSummary, error) {
	summary := &domain.SalesSummary{From: from, To: to}

	var totals struct {
		OrderCount int64
		Revenue    decimal.Decimal
		Refunded   decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) AS order_count,
		            COALESCE(SUM(total), 0) AS revenue,
		            COALESCE(SUM(refunded_amount), 0) AS refunded
		     FROM orders
		     WHERE created_at >= ? AND created_at < ?`, from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	summary.OrderCount = totals.OrderCount
	summary.Revenue = totals.Revenue
	summary.Refunded = totals.Refunded

	err = r.db.WithContext(ctx).
		Raw(`SELECT oi.product_id,
		            oi.product_name,
		            SUM(oi.quantity) AS qty_sold,
		            COALESCE(SUM(oi.line_total), 0) AS revenue
		     FROM order_items oi
		     JOIN orders o ON o.id = oi.order_id
		     WHERE o.created_at >= ? AND o.created_at < ?
		       AND o.payment_status != 'refunded'
		     GROUP BY oi.product_id, oi.product_name
		     ORDER BY qty_sold DESC
		     LIMIT ?`, from, to, topN).
		Scan(&summary.TopProducts).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *GormReportRepository) StockValuation(ctx context.Context) (*domain.StockValuation, error) {
	valuation := &domain.StockValuation{}

	err := r.db.WithContext(ctx).
		Raw(`SELECT id AS ingredient_id,
		            name,
		            unit,
		            current_stock,
		            cost_per_unit,
		            current_stock * cost_per_unit AS value,
		            current_stock < min_stock AS below_min_stock
		     FROM ingredients
		     WHERE deleted_at IS NULL
		     ORDER BY value DESC`).
		Scan(&valuation.Lines).Error
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range valuation.Lines {
		total = total.Add(line.Value)
	}
	valuation.TotalValue = total

	return valuation, nil
}
