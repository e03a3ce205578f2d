package server

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cataloghttp "github.com/tavernhq/backoffice/internal/catalog/delivery/http"
	customerhttp "github.com/tavernhq/backoffice/internal/customer/delivery/http"
	hrhttp "github.com/tavernhq/backoffice/internal/hr/delivery/http"
	inventoryhttp "github.com/tavernhq/backoffice/internal/inventory/delivery/http"
	orderhttp "github.com/tavernhq/backoffice/internal/order/delivery/http"
	reportinghttp "github.com/tavernhq/backoffice/internal/reporting/delivery/http"
	stockcounthttp "github.com/tavernhq/backoffice/internal/stockcount/delivery/http"
)

// Handlers bundles every domain's HTTP delivery for router assembly
type Handlers struct {
	Inventory  *inventoryhttp.InventoryHandler
	Catalog    *cataloghttp.CatalogHandler
	Order      *orderhttp.OrderHandler
	StockCount *stockcounthttp.StockCountHandler
	HR         *hrhttp.HRHandler
	Customer   *customerhttp.CustomerHandler
	Reporting  *reportinghttp.ReportingHandler
}

// NewRouter assembles the full back-office HTTP surface: all domain routes
// under /api, /health, /metrics, CORS and otel instrumentation.
func NewRouter(h Handlers, sqlDB *sql.DB) http.Handler {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	h.Inventory.RegisterRoutes(router, RequireRole)
	h.Catalog.RegisterRoutes(router, RequireRole)
	h.Order.RegisterRoutes(router, RequireRole)
	h.StockCount.RegisterRoutes(router, RequireRole)
	h.HR.RegisterRoutes(router, RequireRole)
	h.Customer.RegisterRoutes(router, RequireRole)
	h.Reporting.RegisterRoutes(router, RequireRole)

	h.Inventory.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return otelhttp.NewHandler(c.Handler(router), "backoffice-http")
}
