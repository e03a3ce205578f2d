package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a CRM record. OrderCount and TotalSpent are denormalized
// purchase stats maintained by order fulfillment and refunds.
type Customer struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"not null;index"`
	Phone      string          `json:"phone" gorm:"uniqueIndex;size:32"`
	Email      string          `json:"email" gorm:"size:255"`
	Address    string          `json:"address" gorm:"type:text"`
	Notes      string          `json:"notes,omitempty" gorm:"type:text"`
	OrderCount int             `json:"order_count" gorm:"not null;default:0"`
	TotalSpent decimal.Decimal `json:"total_spent" gorm:"type:decimal(20,4);not null;default:0"`
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// CustomerRepository defines the contract for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
}
