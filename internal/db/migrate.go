package db

import (
	"embed"
	"fmt"
	"log/slog"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate aplica as migrações pendentes do dialeto ("postgres" ou "sqlite3").
func Migrate(gdb *gorm.DB, dialect string) (int, error) {
	root, err := migrationsRoot(dialect)
	if err != nil {
		return 0, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return 0, fmt.Errorf("get sql.DB: %w", err)
	}

	src := migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       root,
	}
	n, err := migrate.Exec(sqlDB, dialect, src, migrate.Up)
	if err != nil {
		return n, fmt.Errorf("apply migrations (%s): %w", dialect, err)
	}
	slog.Info("migrations_applied", "dialect", dialect, "count", n)
	return n, nil
}

func migrationsRoot(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
