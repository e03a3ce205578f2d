package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary aggregates paid orders over a date range
type SalesSummary struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	OrderCount  int64           `json:"order_count"`
	Revenue     decimal.Decimal `json:"revenue"`
	Refunded    decimal.Decimal `json:"refunded"`
	TopProducts []ProductSales  `json:"top_products"`
}

// ProductSales is one product's sales ranking line
type ProductSales struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	QtySold     int64           `json:"qty_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ValuationLine is one ingredient's share of stock value
type ValuationLine struct {
	IngredientID  uint            `json:"ingredient_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	Value         decimal.Decimal `json:"value"`
	BelowMinStock bool            `json:"below_min_stock"`
}

// StockValuation is the inventory's book value at cost
type StockValuation struct {
	TotalValue decimal.Decimal `json:"total_value"`
	Lines      []ValuationLine `json:"lines"`
}

// ReportRepository defines the read-only aggregation contract
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time, topN int) (*SalesSummary, error)
	StockValuation(ctx context.Context) (*StockValuation, error)
}
