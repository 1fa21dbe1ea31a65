package storage

import (
	"context"
	"fmt"
	"io"

	"pet-tracker/internal/adapters/storage/postgres"
	"pet-tracker/internal/adapters/storage/sqlite"
	"pet-tracker/internal/config"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/platform/logger"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open arma el store según DB_DRIVER. El caller es dueño del Closer.
func Open(ctx context.Context, cfg config.Config, log logger.Logger) (pets.Store, io.Closer, error) {
	if log == nil {
		log = logger.Nop()
	}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.DBPath, log)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewPetsRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("postgres store initialized", logger.Fields{"max_conns": pool.Config().MaxConns})
		return repo, closerFunc(func() error { pool.Close(); return nil }), nil

	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}
