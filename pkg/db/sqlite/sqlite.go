// Package sqlite открывает встроенную базу SQLite (modernc.org/sqlite, без cgo)
// и применяет к ней миграции.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"davazen/pkg/logger"
)

const (
	logOpening           = "opening SQLite database"
	logOpened            = "SQLite database ready"
	logClosing           = "closing SQLite database"
	logMigrationsApplied = "database migrations successfully applied"

	errOpen                    = "failed to open database"
	errPragma                  = "failed to apply pragma"
	errPing                    = "failed to ping database"
	errOpenMigrationSource     = "failed to open migration source"
	errCreateMigrationInstance = "failed to create migration instance"
	errApplyMigrations         = "failed to apply migrations"
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
}

// Database - соединение с файлом SQLite.
type Database struct {
	db   *sql.DB
	path string
}

// Open открывает базу по пути path, включает WAL и ограничивает пул одним соединением.
func Open(ctx context.Context, path string) (*Database, error) {
	log := logger.Log(ctx).With(zap.String("path", path))
	log.Info(ctx, logOpening)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Error(ctx, errOpen, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errOpen, err)
	}

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			log.Error(ctx, errPragma, zap.String("pragma", p), zap.Error(err))
			return nil, fmt.Errorf("%s %q: %w", errPragma, p, err)
		}
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Error(ctx, errPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errPing, err)
	}

	log.Info(ctx, logOpened)
	return &Database{db: db, path: path}, nil
}

// DB возвращает *sql.DB.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Close закрывает базу.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, logClosing, zap.String("path", d.path))
	return d.db.Close()
}

// Migrate применяет миграции из source к базе по пути path.
// Мигратор открывает собственное соединение и закрывает его по завершении.
func Migrate(ctx context.Context, path string, source fs.FS) error {
	log := logger.Log(ctx)

	src, err := iofs.New(source, ".")
	if err != nil {
		log.Error(ctx, errOpenMigrationSource, zap.Error(err))
		return fmt.Errorf("%s: %w", errOpenMigrationSource, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		log.Error(ctx, errCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", errCreateMigrationInstance, err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, errApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", errApplyMigrations, err)
	}

	log.Info(ctx, logMigrationsApplied)
	return nil
}
