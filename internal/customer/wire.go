//go:build wireinject
// +build wireinject

package customer

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tavernhq/backoffice/internal/customer/delivery/http"
	"github.com/tavernhq/backoffice/internal/customer/domain"
	"github.com/tavernhq/backoffice/internal/customer/repository"
	"github.com/tavernhq/backoffice/internal/customer/usecase/command"
	"github.com/tavernhq/backoffice/internal/customer/usecase/query"
)

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return repository.NewGormCustomerRepository(db)
}

// InitializeHTTPHandler initializes the customer HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*httpDelivery.CustomerHandler, error) {
	wire.Build(
		ProvideCustomerRepository,
		command.NewCreateCustomerHandler,
		command.NewUpdateCustomerHandler,
		command.NewDeleteCustomerHandler,
		query.NewGetCustomerHandler,
		query.NewListCustomersHandler,
		httpDelivery.NewCustomerHandler,
	)
	return nil, nil
}
