package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rewardsystem/rewards-api/internal/api"
	"github.com/rewardsystem/rewards-api/internal/core/password"
	"github.com/rewardsystem/rewards-api/internal/core/service"
	"github.com/rewardsystem/rewards-api/internal/core/token"
	"github.com/rewardsystem/rewards-api/internal/infrastructure/db/mongo"
	"github.com/rewardsystem/rewards-api/internal/infrastructure/db/redis"
	"github.com/rewardsystem/rewards-api/internal/infrastructure/queue"
	"github.com/rewardsystem/rewards-api/internal/pkg/config"
	"github.com/rewardsystem/rewards-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer redisClient.Close()

	codec, err := token.New(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	users := mongo.NewUserRepository(db)
	txns := mongo.NewTransactionRepository(db)
	cache := redis.NewRewardsCache(redisClient)

	authSvc := service.NewAuthService(users, hasher, codec, log)
	rewardSvc := service.NewRewardService(txns, cache, log)
	txnSvc := service.NewTransactionService(txns, cache, log)

	dispatcher := queue.NewDispatcher(cfg.IngestWorkers, txnSvc, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Mongo:        db,
		Redis:        redisClient,
		Codec:        codec,
		Users:        users,
		Auth:         authSvc,
		Rewards:      rewardSvc,
		Transactions: txnSvc,
		Dispatcher:   dispatcher,
		Log:          log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
