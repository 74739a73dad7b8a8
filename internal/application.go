package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/tui"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	store, closeStore, err := openStore(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStore(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	log.Info("Storage ready", "backend", conf.Storage.Backend)

	switch conf.Mode {
	case config.ModeHTTP:
		return runHTTP(ctx, logger, conf, store)
	default:
		return runTUI(ctx, logger, conf, store)
	}
}

func runTUI(ctx context.Context, logger *slog.Logger, conf *config.Config, store repository.KeyValue) error {
	game, err := usecase.LoadGame(ctx, logger, store)
	if err != nil {
		return fmt.Errorf("could not load game: %w", err)
	}

	field, err := usecase.LoadFormField(ctx, logger, store, conf.Field.Key, conf.Field.Default)
	if err != nil {
		return fmt.Errorf("could not load field: %w", err)
	}

	return tui.Run(ctx, logger, game, field)
}

func runHTTP(ctx context.Context, logger *slog.Logger, conf *config.Config, store repository.KeyValue) error {
	handlers := rest.NewHandlers(logger, store, conf.Field.Key, conf.Field.Default)

	logger.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err := rest.Start(ctx, logger, rest.NewServer(conf.HTTPPort, handlers)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func openStore(ctx context.Context, conf *config.Config) (repository.KeyValue, func() error, error) {
	switch conf.Storage.Backend {
	case config.BackendRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisKeyValue(redisStorage.Connection), redisStorage.Close, nil
	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteKeyValue(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return repository.NewMemoryKeyValue(), func() error { return nil }, nil
	}
}
