//go:build wireinject
// +build wireinject

package stockcount

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tavernhq/backoffice/internal/inventory/repository"
	httpDelivery "github.com/tavernhq/backoffice/internal/stockcount/delivery/http"
	"github.com/tavernhq/backoffice/internal/stockcount/domain"
	"github.com/tavernhq/backoffice/internal/stockcount/repository"
	"github.com/tavernhq/backoffice/internal/stockcount/usecase/command"
	"github.com/tavernhq/backoffice/internal/stockcount/usecase/query"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/lock"
)

// ProvideStockCountRepository provides the stock count repository
func ProvideStockCountRepository(db *gorm.DB) domain.StockCountRepository {
	return repository.NewGormStockCountRepository(db)
}

// ProvideIngredientRepository provides the ingredient repository for snapshots
func ProvideIngredientRepository(db *gorm.DB) inventorydomain.IngredientRepository {
	return inventoryrepo.NewGormIngredientRepository(db)
}

// InitializeHTTPHandler initializes the stock count HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, locker *lock.Locker, publisher *kafka.Publisher) (*httpDelivery.StockCountHandler, error) {
	wire.Build(
		ProvideStockCountRepository,
		ProvideIngredientRepository,
		wire.Bind(new(command.StockAlertPublisher), new(*kafka.Publisher)),
		command.NewCreateStockCountHandler,
		command.NewSubmitStockCountHandler,
		command.NewApproveStockCountHandler,
		command.NewCompleteStockCountHandler,
		command.NewDeleteStockCountHandler,
		query.NewGetStockCountHandler,
		query.NewListStockCountsHandler,
		httpDelivery.NewStockCountHandler,
	)
	return nil, nil
}
