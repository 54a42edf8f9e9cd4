package app

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-todo-crud/internal/config"
	"github.com/adanyl0v/go-todo-crud/internal/storage"
	"github.com/adanyl0v/go-todo-crud/internal/storage/postgres"
	"github.com/adanyl0v/go-todo-crud/internal/storage/sqlite"
)

var globalStore storage.TodoStore

func MustOpenStorage() {
	cfg := config.Global()

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", cfg.Storage.Driver).
			Msg("failed to open storage")
		panic(err)
	}
	globalStore = store
}

func openStore(ctx context.Context, cfg *config.Config) (storage.TodoStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		store, err := postgres.Open(ctx, globalLogger, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		globalLogger.Info().
			Str("host", cfg.Postgres.Host).
			Int("port", cfg.Postgres.Port).
			Msg("connected to postgres")
		return store, nil
	case config.StorageDriverSQLite:
		store, err := sqlite.Open(ctx, globalLogger, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		globalLogger.Info().
			Str("path", cfg.SQLite.Path).
			Msg("opened sqlite database")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
}

func CloseStorage() {
	if globalStore == nil {
		return
	}

	err := globalStore.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage")
		return
	}
	globalLogger.Info().Msg("closed storage")
}
