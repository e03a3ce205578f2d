package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient represents a raw material tracked by the stock ledger.
// CurrentStock is only ever written through the ledger.
type Ingredient struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null;index"`
	Unit           string          `json:"unit" gorm:"not null;default:'unit'"` // unit, kg, g, l, ml
	CurrentStock   decimal.Decimal `json:"current_stock" gorm:"type:decimal(20,4);not null;default:0"`
	MinStock       decimal.Decimal `json:"min_stock" gorm:"type:decimal(20,4);not null;default:0"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit" gorm:"type:decimal(20,4);not null;default:0"`
	AvgCostPerUnit decimal.Decimal `json:"avg_cost_per_unit" gorm:"type:decimal(20,4);not null;default:0"`
	SupplierID     *uint           `json:"supplier_id,omitempty" gorm:"index"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Ingredient) TableName() string {
	return "ingredients"
}

// MovementType classifies a ledger entry
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// AdjustmentDirection gives an adjustment its sign
type AdjustmentDirection string

const (
	DirectionIncrease AdjustmentDirection = "increase"
	DirectionDecrease AdjustmentDirection = "decrease"
)

// ReferenceType names the entity that originated a movement
type ReferenceType string

const (
	RefOrder      ReferenceType = "order"
	RefRefund     ReferenceType = "refund"
	RefPurchase   ReferenceType = "purchase"
	RefStockCount ReferenceType = "stock_count"
	RefManual     ReferenceType = "manual"
)

// StockMovement is an immutable, append-only ledger entry. Corrections are
// new movements, never edits. Quantity is always a positive magnitude; the
// sign is implied by Type (adjustments carry it in the snapshots).
type StockMovement struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	IngredientID  uint            `json:"ingredient_id" gorm:"not null;index"`
	Type          MovementType    `json:"type" gorm:"not null;size:20"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:decimal(20,4);not null"`
	PreviousStock decimal.Decimal `json:"previous_stock" gorm:"type:decimal(20,4);not null"`
	NewStock      decimal.Decimal `json:"new_stock" gorm:"type:decimal(20,4);not null"`
	ReferenceID   *uint           `json:"reference_id,omitempty" gorm:"index"`
	ReferenceType ReferenceType   `json:"reference_type,omitempty" gorm:"size:20;index"`
	UnitCost      decimal.Decimal `json:"unit_cost" gorm:"type:decimal(20,4);not null;default:0"`
	TotalCost     decimal.Decimal `json:"total_cost" gorm:"type:decimal(20,4);not null;default:0"`
	Notes         string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy     uint            `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// Movement is the request to record one ledger entry
type Movement struct {
	IngredientID  uint
	Type          MovementType
	Direction     AdjustmentDirection // only meaningful for adjustments
	Quantity      decimal.Decimal
	ReferenceID   *uint
	ReferenceType ReferenceType
	UnitCost      *decimal.Decimal
	Notes         string
	ActorID       uint
}

// InsufficientStockError reports a decrease that would drive stock negative.
// Current and Requested are carried so the boundary can render the shortage.
type InsufficientStockError struct {
	IngredientID uint
	Name         string
	Current      decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: have %s, need %s",
		e.Name, e.Current.String(), e.Requested.String())
}

// LedgerStore is the transaction-scoped surface the ledger writes through.
// IngredientForUpdate must take a row lock so movements for one ingredient
// are linearized.
type LedgerStore interface {
	IngredientForUpdate(ctx context.Context, id uint) (*Ingredient, error)
	UpdateIngredientStock(ctx context.Context, ing *Ingredient) error
	AppendMovement(ctx context.Context, mv *StockMovement) error
	MovementsAsc(ctx context.Context, ingredientID uint) ([]StockMovement, error)
}

// LedgerRepository provides ledger storage plus transaction scoping
type LedgerRepository interface {
	InTx(ctx context.Context, fn func(store LedgerStore) error) error
	MovementsByIngredient(ctx context.Context, ingredientID uint, limit int) ([]StockMovement, error)
	IngredientIDs(ctx context.Context) ([]uint, error)
}

// IngredientRepository defines the contract for ingredient data access
type IngredientRepository interface {
	Create(ctx context.Context, ing *Ingredient) error
	FindByID(ctx context.Context, id uint) (*Ingredient, error)
	FindAll(ctx context.Context, limit, offset int) ([]Ingredient, error)
	FindBelowMinStock(ctx context.Context) ([]Ingredient, error)
	Update(ctx context.Context, ing *Ingredient) error
	Delete(ctx context.Context, id uint) error
}
