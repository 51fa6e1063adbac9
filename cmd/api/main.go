// Command api serves the Late Show REST API.
//
// @title                       Late Show API
// @version                     1.0
// @description                 Guests, episodes and rated appearances of a late-night talk show.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/lateshow/lateshow-api/internal/api"
	"github.com/lateshow/lateshow-api/internal/core/ports"
	"github.com/lateshow/lateshow-api/internal/core/service"
	"github.com/lateshow/lateshow-api/internal/infrastructure/config"
	"github.com/lateshow/lateshow-api/internal/infrastructure/db/mongo"
	"github.com/lateshow/lateshow-api/internal/infrastructure/db/postgres"
	redisstore "github.com/lateshow/lateshow-api/internal/infrastructure/db/redis"
	"github.com/lateshow/lateshow-api/internal/infrastructure/http/handlers"
	"github.com/lateshow/lateshow-api/internal/infrastructure/queue"
	"github.com/lateshow/lateshow-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "lateshow-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Msg("postgres connected")

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	checks := map[string]handlers.Check{"postgres": handlers.PostgresCheck(db)}

	recorder, closeRecorder, err := activityRecorder(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeRecorder()

	idempotency, closeRedis, err := idempotencyStore(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeRedis()

	e := api.NewRouter(wire(db, recorder, idempotency, checks, cfg, log))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func wire(db *bun.DB, recorder ports.ActivityRecorder, idempotency ports.IdempotencyStore, checks map[string]handlers.Check, cfg *config.Config, log zerolog.Logger) api.Dependencies {
	users := postgres.NewUserRepository(db)
	guests := postgres.NewGuestRepository(db)
	episodes := postgres.NewEpisodeRepository(db)
	appearances := postgres.NewAppearanceRepository(db)

	return api.Dependencies{
		Auth: service.NewAuthService(users, recorder, service.AuthConfig{
			JWTSecret:  cfg.Auth.JWTSecret,
			TokenTTL:   cfg.Auth.TokenTTL,
			BcryptCost: cfg.Auth.BcryptCost,
		}, log.With().Str("component", "auth").Logger()),
		Guests:          service.NewGuestService(guests),
		Episodes:        service.NewEpisodeService(episodes, appearances, recorder, log.With().Str("component", "episodes").Logger()),
		Appearances:     service.NewAppearanceService(appearances, guests, episodes, idempotency, recorder, log.With().Str("component", "appearances").Logger()),
		ReadinessChecks: checks,
		Log:             log,
		ExposeErrors:    cfg.ExposeErrors,
	}
}

// activityRecorder starts the audit log dispatcher when MongoDB is configured.
func activityRecorder(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks map[string]handlers.Check) (ports.ActivityRecorder, func(), error) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("MONGO_URI not set, activity log disabled")
		return queue.Discard{}, func() {}, nil
	}

	client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	if err := mongo.EnsureIndexes(ctx, mdb); err != nil {
		log.Warn().Err(err).Msg("activity log indexes not created")
	}
	checks["mongodb"] = handlers.MongoCheck(mdb)
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected, activity log enabled")

	// Workers outlive the request context so Close can drain them after shutdown.
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, mongo.NewActivityRepository(mdb), log.With().Str("component", "activity").Logger())
	dispatcher.Start(context.WithoutCancel(ctx))

	return dispatcher, func() {
		dispatcher.Close()
		disconnect(client, log)
	}, nil
}

func disconnect(client *mongodriver.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("mongodb disconnect")
	}
}

// idempotencyStore connects Redis when configured; a nil store disables Idempotency-Key handling.
func idempotencyStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks map[string]handlers.Check) (ports.IdempotencyStore, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys disabled")
		return nil, func() {}, nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	checks["redis"] = handlers.RedisCheck(client)
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected, idempotency keys enabled")

	return redisstore.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL), func() { closeRedis(client, log) }, nil
}

func closeRedis(client *redis.Client, log zerolog.Logger) {
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
}
