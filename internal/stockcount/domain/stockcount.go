package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
)

// CountType distinguishes an opening-shift count from a closing one
type CountType string

const (
	CountOpening CountType = "opening"
	CountClosing CountType = "closing"
)

// CountStatus is the stock count workflow state
type CountStatus string

const (
	CountDraft     CountStatus = "draft"
	CountSubmitted CountStatus = "submitted"
	CountApproved  CountStatus = "approved"
	CountCompleted CountStatus = "completed"
)

var (
	ErrStockCountNotFound    = errors.New("stock count not found")
	ErrAlreadyCompleted      = errors.New("stock count already completed")
	ErrCannotDeleteCompleted = errors.New("completed stock counts cannot be deleted")
	ErrInvalidTransition     = errors.New("invalid stock count state transition")
)

// StockCount is a physical count session. SystemQty on each item is snapshot
// at creation; completing the count writes one ledger adjustment per
// non-zero variance.
type StockCount struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	CountNo     string           `json:"count_no" gorm:"uniqueIndex;size:32;not null"`
	Type        CountType        `json:"type" gorm:"size:20;not null;default:'closing'"`
	Status      CountStatus      `json:"status" gorm:"size:20;not null;default:'draft'"`
	Notes       string           `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy   uint             `json:"created_by"`
	ApprovedBy  *uint            `json:"approved_by,omitempty"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time       `json:"approved_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Items       []StockCountItem `json:"items" gorm:"foreignKey:StockCountID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName specifies the table name
func (StockCount) TableName() string {
	return "stock_counts"
}

// StockCountItem is one counted ingredient line. Variance is CountedQty
// minus SystemQty; negative means shrinkage.
type StockCountItem struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	StockCountID uint             `json:"stock_count_id" gorm:"not null;index"`
	IngredientID uint             `json:"ingredient_id" gorm:"not null;index"`
	SystemQty    decimal.Decimal  `json:"system_qty" gorm:"type:decimal(20,4);not null"`
	CountedQty   *decimal.Decimal `json:"counted_qty,omitempty" gorm:"type:decimal(20,4)"`
	Variance     decimal.Decimal  `json:"variance" gorm:"type:decimal(20,4);not null;default:0"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName specifies the table name
func (StockCountItem) TableName() string {
	return "stock_count_items"
}

// ReconcileStore is the transaction-scoped surface count completion writes
// through. Ledger() shares the transaction, so the status flip and every
// variance adjustment commit together.
type ReconcileStore interface {
	StockCountForUpdate(ctx context.Context, id uint) (*StockCount, error)
	UpdateStockCount(ctx context.Context, sc *StockCount) error
	Ledger() inventorydomain.LedgerStore
}

// StockCountRepository defines the contract for stock count data access
type StockCountRepository interface {
	Create(ctx context.Context, sc *StockCount) error
	FindByID(ctx context.Context, id uint) (*StockCount, error)
	FindAll(ctx context.Context, limit, offset int) ([]StockCount, error)
	Update(ctx context.Context, sc *StockCount) error
	Delete(ctx context.Context, id uint) error
	InTx(ctx context.Context, fn func(store ReconcileStore) error) error
}
