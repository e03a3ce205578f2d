package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tavernhq/backoffice/internal/catalog"
	catalogrepo "github.com/tavernhq/backoffice/internal/catalog/repository"
	"github.com/tavernhq/backoffice/internal/customer"
	customerrepo "github.com/tavernhq/backoffice/internal/customer/repository"
	"github.com/tavernhq/backoffice/internal/hr"
	hrrepo "github.com/tavernhq/backoffice/internal/hr/repository"
	"github.com/tavernhq/backoffice/internal/inventory"
	inventoryrepo "github.com/tavernhq/backoffice/internal/inventory/repository"
	"github.com/tavernhq/backoffice/internal/order"
	orderrepo "github.com/tavernhq/backoffice/internal/order/repository"
	"github.com/tavernhq/backoffice/internal/reporting"
	"github.com/tavernhq/backoffice/internal/server"
	"github.com/tavernhq/backoffice/internal/stockcount"
	stockcountrepo "github.com/tavernhq/backoffice/internal/stockcount/repository"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/cache"
	"github.com/tavernhq/backoffice/pkg/database"
	"github.com/tavernhq/backoffice/pkg/lock"
	"github.com/tavernhq/backoffice/pkg/logger"
	"github.com/tavernhq/backoffice/pkg/tracing"
)

func main() {
	logger.Init("backoffice", getEnv("APP_ENV", "development") == "development")

	tp, err := tracing.InitTracer("backoffice")
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "backoffice"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Migrations, one repository per domain
	migrations := []func() error{
		inventoryrepo.NewGormIngredientRepository(db).AutoMigrate,
		catalogrepo.NewGormProductRepository(db).AutoMigrate,
		orderrepo.NewGormOrderRepository(db).AutoMigrate,
		stockcountrepo.NewGormStockCountRepository(db).AutoMigrate,
		hrrepo.NewGormEmployeeRepository(db).AutoMigrate,
		customerrepo.NewGormCustomerRepository(db).AutoMigrate,
	}
	for _, migrate := range migrations {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Redis backs the reference cache and the posting locks; both degrade
	// to no-ops without it
	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unreachable, cache and locks disabled")
			redisClient = nil
		}
	}
	refCache := cache.New(redisClient, 5*time.Minute)
	locker := lock.New(redisClient)

	// Kafka is optional; a nil publisher drops events
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unreachable, events disabled")
			publisher = nil
		}
	}
	defer publisher.Close()

	inventoryHandler, err := inventory.InitializeHTTPHandler(db, refCache, locker, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	catalogHandler, err := catalog.InitializeHTTPHandler(db, refCache)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}
	orderHandler, err := order.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	stockCountHandler, err := stockcount.InitializeHTTPHandler(db, locker, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize stock count handler")
	}
	hrHandler, err := hr.InitializeHTTPHandler(db, hr.ShiftStart(getEnv("SHIFT_START", "09:00")))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize HR handler")
	}
	customerHandler, err := customer.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize customer handler")
	}
	reportingHandler, err := reporting.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize reporting handler")
	}

	router := server.NewRouter(server.Handlers{
		Inventory:  inventoryHandler,
		Catalog:    catalogHandler,
		Order:      orderHandler,
		StockCount: stockCountHandler,
		HR:         hrHandler,
		Customer:   customerHandler,
		Reporting:  reportingHandler,
	}, sqlDB)

	port := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", port).Msg("Back office server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
