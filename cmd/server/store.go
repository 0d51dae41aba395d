package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"wardrobe.backend/internal/config"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/internal/infrastructure/datasources/migrations"
	"wardrobe.backend/internal/infrastructure/datasources/postgres"
	"wardrobe.backend/internal/infrastructure/datasources/sqlite"
	"wardrobe.backend/internal/infrastructure/memory"
	gormrepos "wardrobe.backend/internal/infrastructure/repositories"
)

var (
	openPostgres = postgres.NewConnection
	openSQLite   = sqlite.NewConnection
)

// newStore builds the store selected by STORAGE_DRIVER, migrating the
// schema first for the durable drivers.
func newStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return memory.NewStore(), nil

	case config.StoragePostgres:
		sqlDB, err := openPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		if _, err := migrations.Up(ctx, sqlDB, goose.DialectPostgres); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		db, err := postgres.OpenGorm(sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return gormrepos.NewStore(db), nil

	case config.StorageSQLite:
		db, err := openSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if _, err := migrations.Up(ctx, sqlDB, goose.DialectSQLite3); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return gormrepos.NewStore(db), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
