package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ccm/recadastramento/internal/config"
	"github.com/ccm/recadastramento/internal/db"
	"github.com/ccm/recadastramento/internal/repository"
	"github.com/ccm/recadastramento/internal/service"
	"gorm.io/gorm"
)

type stores struct {
	employees service.EmployeeStore
	contacts  service.ContactStore
	close     func()
}

// openStores conecta no banco escolhido em STORE_DRIVER e prepara o schema (migrações ou índices).
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := db.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		database := client.Database(cfg.MongoDB)
		employees := repository.NewMongoEmployeeRepository(database)
		contacts := repository.NewMongoContactRepository(database)

		if err := employees.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure employee indexes: %w", err)
		}
		if err := contacts.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure contact indexes: %w", err)
		}
		slog.Info("store_ready", "driver", cfg.StoreDriver, "mongo_db", cfg.MongoDB)
		return &stores{
			employees: employees,
			contacts:  contacts,
			close:     func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		gdb, dialect, err := openSQL(cfg)
		if err != nil {
			return nil, err
		}
		n, err := db.Migrate(gdb, dialect)
		if err != nil {
			_ = db.CloseSQL(gdb)
			return nil, err
		}
		slog.Info("store_ready", "driver", cfg.StoreDriver, "migrations_applied", n)
		return &stores{
			employees: repository.NewEmployeeRepository(gdb),
			contacts:  repository.NewContactRepository(gdb),
			close:     func() { _ = db.CloseSQL(gdb) },
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func openSQL(cfg *config.Config) (*gorm.DB, string, error) {
	if cfg.StoreDriver == config.DriverSQLite {
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		return gdb, db.DialectSQLite, err
	}
	gdb, err := db.OpenPostgres(cfg.DatabaseURL)
	return gdb, db.DialectPostgres, err
}
