// Command seed drops and recreates the schema and loads the demo data set.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lateshow/lateshow-api/internal/infrastructure/config"
	"github.com/lateshow/lateshow-api/internal/infrastructure/db/postgres"
	"github.com/lateshow/lateshow-api/internal/seed"
	"github.com/lateshow/lateshow-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: true, Service: "lateshow-seed"})
	log := logger.Component("seed")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := seed.Run(ctx, db, cfg.Auth.BcryptCost, log); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		db.Close()
		os.Exit(1)
	}
}
