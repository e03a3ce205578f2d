// Command stockrebuild replays the stock movement ledger and overwrites
// each ingredient's stored stock with the replayed value. Run it after
// manual database surgery or suspected drift.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	inventoryrepo "github.com/tavernhq/backoffice/internal/inventory/repository"
	"github.com/tavernhq/backoffice/pkg/database"
	"github.com/tavernhq/backoffice/pkg/logger"
)

func main() {
	ingredientID := flag.Uint("ingredient", 0, "rebuild a single ingredient (0 = all)")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	logger.Init("stockrebuild", true)

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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	l := ledger.New(inventoryrepo.NewGormLedgerRepository(db))

	if *ingredientID != 0 {
		if err := l.Recompute(ctx, *ingredientID); err != nil {
			logger.Logger.Fatal().Err(err).Uint("ingredient_id", *ingredientID).Msg("Rebuild failed")
		}
		logger.Logger.Info().Uint("ingredient_id", *ingredientID).Msg("Rebuild complete")
		return
	}

	if err := l.RecomputeAll(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Rebuild failed")
	}
	logger.Logger.Info().Msg("Rebuild complete")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
