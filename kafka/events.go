package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is emitted after an order and its stock deductions commit
type OrderPlacedEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OrderID       uint            `json:"order_id"`
	OrderNo       string          `json:"order_no"`
	CustomerID    *uint           `json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
	Timestamp     time.Time       `json:"timestamp"`
}

// OrderRefundedEvent is emitted after a refund commits
type OrderRefundedEvent struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	OrderID      uint            `json:"order_id"`
	OrderNo      string          `json:"order_no"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	FullRefund   bool            `json:"full_refund"`
	Timestamp    time.Time       `json:"timestamp"`
}

// StockLowEvent is emitted when a deduction drops an ingredient below its
// reorder threshold
type StockLowEvent struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	IngredientID uint            `json:"ingredient_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced   = "order.placed"
	EventTypeOrderRefunded = "order.refunded"
	EventTypeStockLow      = "stock.low"
)

// Kafka topics
const (
	TopicOrderPlaced   = "order-placed"
	TopicOrderRefunded = "order-refunded"
	TopicStockLow      = "stock-low"
)
