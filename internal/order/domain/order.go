package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/tavernhq/backoffice/internal/catalog/domain"
	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
)

// PaymentStatus tracks the money side of an order
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment methods accepted at the till
const (
	MethodCash = "cash"
	MethodCard = "card"
	MethodQR   = "qr"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrAlreadyRefunded    = errors.New("order already refunded")
	ErrRefundExceedsTotal = errors.New("refund amount exceeds refundable total")
)

// Order is a completed sale. Stock deductions for its recipe explosion are
// committed in the same transaction that creates the row.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderNo        string          `json:"order_no" gorm:"uniqueIndex;size:32;not null"`
	CustomerID     *uint           `json:"customer_id,omitempty" gorm:"index"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(20,4);not null"`
	Discount       decimal.Decimal `json:"discount" gorm:"type:decimal(20,4);not null;default:0"`
	Tax            decimal.Decimal `json:"tax" gorm:"type:decimal(20,4);not null;default:0"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(20,4);not null"`
	PaymentMethod  string          `json:"payment_method" gorm:"size:20;not null"`
	PaymentStatus  PaymentStatus   `json:"payment_status" gorm:"size:20;not null;default:'paid'"`
	RefundedAmount decimal.Decimal `json:"refunded_amount" gorm:"type:decimal(20,4);not null;default:0"`
	RefundedAt     *time.Time      `json:"refunded_at,omitempty"`
	RefundedBy     *uint           `json:"refunded_by,omitempty"`
	RefundReason   string          `json:"refund_reason,omitempty" gorm:"type:text"`
	Notes          string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy      uint            `json:"created_by"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one sold line. ProductName and UnitPrice are snapshots taken
// at sale time so later catalog edits never rewrite history.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null;index"`
	ProductName string          `json:"product_name" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,4);not null"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(20,4);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderFilter narrows an order listing
type OrderFilter struct {
	From          *time.Time
	To            *time.Time
	CustomerID    *uint
	PaymentStatus *PaymentStatus
	Limit         int
	Offset        int
}

// FulfillmentStore is the transaction-scoped surface order fulfillment and
// refunds write through. Ledger() is bound to the same transaction, so the
// order row and every stock deduction commit or roll back together.
type FulfillmentStore interface {
	CreateOrder(ctx context.Context, o *Order) error
	UpdateOrder(ctx context.Context, o *Order) error
	OrderForUpdate(ctx context.Context, id uint) (*Order, error)
	ProductsByIDs(ctx context.Context, ids []uint) (map[uint]catalogdomain.Product, error)
	RecipesByProductIDs(ctx context.Context, ids []uint) (map[uint][]catalogdomain.Recipe, error)
	MovementsByReference(ctx context.Context, refType inventorydomain.ReferenceType, refID uint) ([]inventorydomain.StockMovement, error)
	AdjustCustomerStats(ctx context.Context, customerID uint, spentDelta decimal.Decimal, orderDelta int) error
	Ledger() inventorydomain.LedgerStore
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	InTx(ctx context.Context, fn func(store FulfillmentStore) error) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, error)
}
