//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tavernhq/backoffice/internal/catalog/delivery/http"
	"github.com/tavernhq/backoffice/internal/catalog/domain"
	"github.com/tavernhq/backoffice/internal/catalog/repository"
	"github.com/tavernhq/backoffice/internal/catalog/usecase/command"
	"github.com/tavernhq/backoffice/internal/catalog/usecase/query"
	"github.com/tavernhq/backoffice/pkg/cache"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideRecipeRepository provides the recipe repository
func ProvideRecipeRepository(db *gorm.DB) domain.RecipeRepository {
	return repository.NewGormRecipeRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideRecipeRepository,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, c *cache.Cache) (*httpDelivery.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateProductHandler,
		command.NewUpdateProductHandler,
		command.NewDeleteProductHandler,
		command.NewSetRecipeHandler,
		command.NewCreateCategoryHandler,
		query.NewGetProductHandler,
		query.NewListProductsHandler,
		query.NewListCategoriesHandler,
		query.NewGetRecipeHandler,
		httpDelivery.NewCatalogHandler,
	)
	return nil, nil
}
