package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/tavernhq/backoffice/internal/catalog/domain"
	customerdomain "github.com/tavernhq/backoffice/internal/customer/domain"
	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tavernhq/backoffice/internal/inventory/repository"
	"github.com/tavernhq/backoffice/internal/order/domain"
)

// GormOrderRepository implements domain.OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

// InTx runs fn against a store bound to a single database transaction
func (r *GormOrderRepository) InTx(ctx context.Context, fn func(store domain.FulfillmentStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormFulfillmentStore{tx: tx, ledger: inventoryrepo.NewLedgerStore(tx)})
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items")
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.PaymentStatus != nil {
		q = q.Where("payment_status = ?", *filter.PaymentStatus)
	}

	var orders []domain.Order
	err := q.Order("created_at desc, id desc").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&orders).Error
	return orders, err
}

// gormFulfillmentStore is the transaction-scoped store behind InTx
type gormFulfillmentStore struct {
	tx     *gorm.DB
	ledger inventorydomain.LedgerStore
}

func (s *gormFulfillmentStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	return s.tx.WithContext(ctx).Create(o).Error
}

func (s *gormFulfillmentStore) UpdateOrder(ctx context.Context, o *domain.Order) error {
	return s.tx.WithContext(ctx).Omit("Items").Save(o).Error
}

func (s *gormFulfillmentStore) OrderForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	err := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.tx.WithContext(ctx).Where("order_id = ?", id).Find(&o.Items).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *gormFulfillmentStore) ProductsByIDs(ctx context.Context, ids []uint) (map[uint]catalogdomain.Product, error) {
	var products []catalogdomain.Product
	if err := s.tx.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]catalogdomain.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (s *gormFulfillmentStore) RecipesByProductIDs(ctx context.Context, ids []uint) (map[uint][]catalogdomain.Recipe, error) {
	var recipes []catalogdomain.Recipe
	if err := s.tx.WithContext(ctx).Where("product_id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	out := make(map[uint][]catalogdomain.Recipe)
	for _, rec := range recipes {
		out[rec.ProductID] = append(out[rec.ProductID], rec)
	}
	return out, nil
}

func (s *gormFulfillmentStore) MovementsByReference(ctx context.Context, refType inventorydomain.ReferenceType, refID uint) ([]inventorydomain.StockMovement, error) {
	var movements []inventorydomain.StockMovement
	err := s.tx.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Order("created_at asc, id asc").
		Find(&movements).Error
	return movements, err
}

// AdjustCustomerStats bumps the denormalized purchase stats. Decrements are
// floored at zero so replayed refunds cannot drive the counters negative.
func (s *gormFulfillmentStore) AdjustCustomerStats(ctx context.Context, customerID uint, spentDelta decimal.Decimal, orderDelta int) error {
	return s.tx.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"order_count": gorm.Expr("GREATEST(order_count + ?, 0)", orderDelta),
			"total_spent": gorm.Expr("GREATEST(total_spent + ?, 0)", spentDelta),
		}).Error
}

func (s *gormFulfillmentStore) Ledger() inventorydomain.LedgerStore {
	return s.ledger
}
