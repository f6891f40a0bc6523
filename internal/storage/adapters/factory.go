// Package adapters выбирает и инициализирует драйвер хранилища по конфигурации.
package adapters

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"davazen/internal/config"
	"davazen/internal/storage"
	"davazen/internal/storage/adapters/memory"
	"davazen/internal/storage/adapters/postgres"
	"davazen/internal/storage/adapters/redis"
	"davazen/internal/storage/adapters/sqlite"
	"davazen/migrations"
	"davazen/pkg/apperr"
	pgdb "davazen/pkg/db/postgres"
	redisdb "davazen/pkg/db/redis"
	sqlitedb "davazen/pkg/db/sqlite"
	"davazen/pkg/logger"
)

const (
	msgStorageReady = "storage initialized"

	errCtxPostgres = "initializing postgres storage"
	errCtxRedis    = "initializing redis storage"
	errCtxSQLite   = "initializing sqlite storage"
)

// NewStore создает хранилище выбранного драйвера. Для SQL-драйверов применяются миграции.
func NewStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store = memory.New()
	case config.DriverPostgres:
		store, err = newPostgres(ctx, &cfg.Postgres)
	case config.DriverRedis:
		store, err = newRedis(ctx, &cfg.Redis)
	case config.DriverSQLite:
		store, err = newSQLite(ctx, &cfg.SQLite)
	default:
		return nil, apperr.Configuration(fmt.Sprintf("unknown storage driver %q", cfg.Storage.Driver))
	}
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, msgStorageReady, zap.String("driver", cfg.Storage.Driver))
	return store, nil
}

func newPostgres(ctx context.Context, cfg *config.PostgresConfig) (storage.Store, error) {
	if err := pgdb.Migrate(ctx, cfg.GetConnectionURL(), migrations.Postgres()); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPostgres, err)
	}

	db, err := pgdb.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPostgres, err)
	}
	return postgres.New(db.Pool()), nil
}

func newRedis(ctx context.Context, cfg *config.RedisConfig) (storage.Store, error) {
	client, err := redisdb.NewClient(ctx, cfg.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRedis, err)
	}
	return redis.New(client.RawClient(), redis.DefaultNamespace), nil
}

func newSQLite(ctx context.Context, cfg *config.SQLiteConfig) (storage.Store, error) {
	if err := sqlitedb.Migrate(ctx, cfg.Path, migrations.SQLite()); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSQLite, err)
	}

	db, err := sqlitedb.Open(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSQLite, err)
	}
	return sqlite.New(db.DB()), nil
}
