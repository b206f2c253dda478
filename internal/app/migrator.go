package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator wraps goose over the pgx pool.
type Migrator struct {
	db             *sql.DB
	migrationsPath string
	log            *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose needs *sql.DB; borrow one from the pool.
	db := stdlib.OpenDBFromPool(pool)

	return &Migrator{
		db:             db,
		migrationsPath: migrationsPath,
		log:            log.With(zap.String("component", "migrator")),
	}, nil
}

// Run applies all pending migrations.
func (mg *Migrator) Run(ctx context.Context) error {
	mg.log.Info("Applying database migrations", zap.String("path", mg.migrationsPath))

	if err := goose.UpContext(ctx, mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return fmt.Errorf("get migration version: %w", err)
	}

	mg.log.Info("Migrations applied", zap.Int64("version", version))
	return nil
}

// Close releases the migrator's connection; the pool stays open.
func (mg *Migrator) Close() error {
	if mg.db != nil {
		return mg.db.Close()
	}
	return nil
}
