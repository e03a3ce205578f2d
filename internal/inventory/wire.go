//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tavernhq/backoffice/internal/inventory/delivery/http"
	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/internal/inventory/repository"
	"github.com/tavernhq/backoffice/internal/inventory/usecase/command"
	"github.com/tavernhq/backoffice/internal/inventory/usecase/query"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/cache"
	"github.com/tavernhq/backoffice/pkg/lock"
)

// ProvideIngredientRepository provides the ingredient repository with tracing
func ProvideIngredientRepository(db *gorm.DB) domain.IngredientRepository {
	return repository.NewGormIngredientRepositoryWithTracing(db)
}

// ProvideLedgerRepository provides the ledger repository
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewGormLedgerRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideIngredientRepository,
	ProvideLedgerRepository,
)

// InitializeHTTPHandler initializes the inventory HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, c *cache.Cache, locker *lock.Locker, publisher *kafka.Publisher) (*httpDelivery.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		wire.Bind(new(command.StockAlertPublisher), new(*kafka.Publisher)),
		ledger.New,
		command.NewCreateIngredientHandler,
		command.NewUpdateIngredientHandler,
		command.NewDeleteIngredientHandler,
		command.NewAddStockHandler,
		command.NewAdjustStockHandler,
		command.NewRecomputeStockHandler,
		query.NewGetIngredientHandler,
		query.NewListIngredientsHandler,
		query.NewListMovementsHandler,
		query.NewLowStockHandler,
		httpDelivery.NewInventoryHandler,
	)
	return nil, nil
}
