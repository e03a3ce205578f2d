//go:build wireinject
// +build wireinject

package reporting

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tavernhq/backoffice/internal/reporting/delivery/http"
	"github.com/tavernhq/backoffice/internal/reporting/domain"
	"github.com/tavernhq/backoffice/internal/reporting/repository"
	"github.com/tavernhq/backoffice/internal/reporting/usecase/query"
)

// ProvideReportRepository provides the report repository
func ProvideReportRepository(db *gorm.DB) domain.ReportRepository {
	return repository.NewGormReportRepository(db)
}

// InitializeHTTPHandler initializes the reporting HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*httpDelivery.ReportingHandler, error) {
	wire.Build(
		ProvideReportRepository,
		query.NewSalesSummaryHandler,
		query.NewStockValuationHandler,
		httpDelivery.NewReportingHandler,
	)
	return nil, nil
}
