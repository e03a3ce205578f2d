package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tavernhq/backoffice/internal/inventory/repository"
	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// GormStockCountRepository implements domain.StockCountRepository
type GormStockCountRepository struct {
	db *gorm.DB
}

func NewGormStockCountRepository(db *gorm.DB) *GormStockCountRepository {
	return &GormStockCountRepository{db: db}
}

func (r *GormStockCountRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockCount{}, &domain.StockCountItem{})
}

func (r *GormStockCountRepository) Create(ctx context.Context, sc *domain.StockCount) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *GormStockCountRepository) FindByID(ctx context.Context, id uint) (*domain.StockCount, error) {
	var sc domain.StockCount
	err := r.db.WithContext(ctx).Preload("Items").First(&sc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStockCountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *GormStockCountRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.StockCount, error) {
	var counts []domain.StockCount
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&counts).Error
	return counts, err
}

func (r *GormStockCountRepository) Update(ctx context.Context, sc *domain.StockCount) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sc).Error
}

func (r *GormStockCountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stock_count_id = ?", id).Delete(&domain.StockCountItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.StockCount{}, id).Error
	})
}

// InTx runs fn against a store bound to a single database transaction
func (r *GormStockCountRepository) InTx(ctx context.Context, fn func(store domain.ReconcileStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormReconcileStore{tx: tx, ledger: inventoryrepo.NewLedgerStore(tx)})
	})
}

// gormReconcileStore is the transaction-scoped store behind InTx
type gormReconcileStore struct {
	tx     *gorm.DB
	ledger inventorydomain.LedgerStore
}

func (s *gormReconcileStore) StockCountForUpdate(ctx context.Context, id uint) (*domain.StockCount, error) {
	var sc domain.StockCount
	err := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStockCountNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.tx.WithContext(ctx).Where("stock_count_id = ?", id).Find(&sc.Items).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *gormReconcileStore) UpdateStockCount(ctx context.Context, sc *domain.StockCount) error {
	return s.tx.WithContext(ctx).Omit("Items").Save(sc).Error
}

func (s *gormReconcileStore) Ledger() inventorydomain.LedgerStore {
	return s.ledger
}
