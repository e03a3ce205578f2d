package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups products on the menu
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	SortOrder int            `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Product is a sellable menu item
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"not null;index"`
	SKU        string          `json:"sku" gorm:"uniqueIndex;size:64"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(20,4);not null"`
	CategoryID *uint           `json:"category_id,omitempty" gorm:"index"`
	ImageURL   string          `json:"image_url"`
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Recipe is one bill-of-materials edge: how much of an ingredient one unit
// of the product consumes.
type Recipe struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	ProductID    uint            `json:"product_id" gorm:"not null;index:idx_recipe_product_ingredient,unique"`
	IngredientID uint            `json:"ingredient_id" gorm:"not null;index:idx_recipe_product_ingredient,unique"`
	QtyPerUnit   decimal.Decimal `json:"qty_per_unit" gorm:"type:decimal(20,4);not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Recipe) TableName() string {
	return "recipes"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uint) error
}

// RecipeRepository defines the contract for recipe data access
type RecipeRepository interface {
	ByProductID(ctx context.Context, productID uint) ([]Recipe, error)
	ReplaceForProduct(ctx context.Context, productID uint, recipes []Recipe) error
}
