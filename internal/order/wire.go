//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tavernhq/backoffice/internal/order/delivery/http"
	"github.com/tavernhq/backoffice/internal/order/domain"
	"github.com/tavernhq/backoffice/internal/order/repository"
	"github.com/tavernhq/backoffice/internal/order/usecase/command"
	"github.com/tavernhq/backoffice/internal/order/usecase/query"
	"github.com/tavernhq/backoffice/kafka"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// InitializeHTTPHandler initializes the order HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*httpDelivery.OrderHandler, error) {
	wire.Build(
		ProvideOrderRepository,
		wire.Bind(new(command.EventPublisher), new(*kafka.Publisher)),
		command.NewCreateOrderHandler,
		command.NewRefundOrderHandler,
		query.NewGetOrderHandler,
		query.NewListOrdersHandler,
		httpDelivery.NewOrderHandler,
	)
	return nil, nil
}
