package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
)

// GormIngredientRepository implements domain.IngredientRepository
type GormIngredientRepository struct {
	db *gorm.DB
}

func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

func (r *GormIngredientRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Ingredient{}, &domain.StockMovement{})
}

func (r *GormIngredientRepository) Create(ctx context.Context, ing *domain.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *GormIngredientRepository) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *GormIngredientRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := r.db.WithContext(ctx).
		Order("name").
		Limit(limit).
		Offset(offset).
		Find(&ingredients).Error
	return ingredients, err
}

func (r *GormIngredientRepository) FindBelowMinStock(ctx context.Context) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := r.db.WithContext(ctx).
		Where("current_stock < min_stock").
		Order("name").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *GormIngredientRepository) Update(ctx context.Context, ing *domain.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *GormIngredientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Ingredient{}, id).Error
}

// GormLedgerRepository implements domain.LedgerRepository and, when
// transaction-scoped, domain.LedgerStore.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// NewLedgerStore binds a ledger store to an already-open transaction. Used
// by callers that commit movements together with their own writes.
func NewLedgerStore(tx *gorm.DB) domain.LedgerStore {
	return &GormLedgerRepository{db: tx}
}

// InTx runs fn with a store bound to a single database transaction
func (r *GormLedgerRepository) InTx(ctx context.Context, fn func(store domain.LedgerStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormLedgerRepository{db: tx})
	})
}

// IngredientForUpdate loads an ingredient under SELECT ... FOR UPDATE, which
// linearizes all stock mutations for that row until the transaction ends.
func (r *GormLedgerRepository) IngredientForUpdate(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ing, id).Error
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *GormLedgerRepository) UpdateIngredientStock(ctx context.Context, ing *domain.Ingredient) error {
	return r.db.WithContext(ctx).Model(ing).
		Updates(map[string]interface{}{
			"current_stock":     ing.CurrentStock,
			"avg_cost_per_unit": ing.AvgCostPerUnit,
		}).Error
}

func (r *GormLedgerRepository) AppendMovement(ctx context.Context, mv *domain.StockMovement) error {
	return r.db.WithContext(ctx).Create(mv).Error
}

func (r *GormLedgerRepository) MovementsAsc(ctx context.Context, ingredientID uint) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at asc, id asc").
		Find(&movements).Error
	return movements, err
}

func (r *GormLedgerRepository) MovementsByIngredient(ctx context.Context, ingredientID uint, limit int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *GormLedgerRepository) IngredientIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&domain.Ingredient{}).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}
