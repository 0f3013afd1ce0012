package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"stockledger/migrations"
)

// MigrationsFS returns the embedded migrations of the store's dialect along
// with the matching goose dialect.
func MigrationsFS(driver string) (fs.FS, goose.Dialect, error) {
	dir, dialect := "sqlite", goose.DialectSQLite3
	if driver == DriverPostgres {
		dir, dialect = "postgres", goose.DialectPostgres
	}
	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, "", err
	}
	return sub, dialect, nil
}

// Migrate applies every pending migration. Running it on an up-to-date
// store is a no-op.
func Migrate(ctx context.Context, s *Store) error {
	fsys, dialect, err := MigrationsFS(s.Driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, s.DB.DB, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Info("migration applied", map[string]interface{}{"version": r.Source.Version, "duration": r.Duration.String()})
	}
	return nil
}
