package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/piskvorky-backend/internal/config"
	"github.com/rocketscienceinc/piskvorky-backend/internal/repository"
	"github.com/rocketscienceinc/piskvorky-backend/internal/repository/storage"
	"github.com/rocketscienceinc/piskvorky-backend/internal/transport/console"
	"github.com/rocketscienceinc/piskvorky-backend/internal/usecase"
)

var (
	ErrAddrNotFound         = errors.New("redis address string is empty")
	ErrUnknownHistoryDriver  = errors.New("unknown history driver")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	historyRepo, closeHistory, err := newHistoryRepository(ctx, conf.History, redisStorage)
	if err != nil {
		return err
	}
	defer closeHistory()

	gameRepo := repository.NewGameRepository(redisStorage)
	gameManager := usecase.NewGameManager(logger, gameRepo, historyRepo, usecase.EngineOptions{
		SearchDepth: conf.Engine.SearchDepth,
		SharedCache: conf.Engine.SharedCache(),
		CacheSize:   conf.Engine.CacheSize,
	})
	defer gameManager.Close()

	log.Info("Starting console session", "history", conf.History.Driver, "depth", conf.Engine.SearchDepth)

	if err = console.New(logger, gameManager, os.Stdout).Start(ctx, os.Stdin); err != nil {
		return fmt.Errorf("console session error: %w", err)
	}

	log.Info("Console session finished")

	return nil
}

func newHistoryRepository(
	ctx context.Context, conf config.History, client *redis.Client,
) (repository.HistoryRepository, func(), error) {
	switch conf.Driver {
	case config.HistoryDriverRedis:
		return repository.NewRedisHistoryRepository(client), func() {}, nil
	case config.HistoryDriverSQLite:
		db, err := storage.NewSQLiteStorage(conf.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = db.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteHistoryRepository(db.Connection), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownHistoryDriver, conf.Driver)
	}
}
