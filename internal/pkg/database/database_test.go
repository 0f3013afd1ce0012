package database

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "stockledger/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, Options{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "inventory.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, Migrate(ctx, s))
	return s
}

func insertProduct(t *testing.T, q Querier, name string) int64 {
	t.Helper()
	now := FormatTime(time.Now())
	id, err := Insert(context.Background(), q,
		`INSERT INTO products (name, unit_price, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
		name, "1.50", now, now)
	require.NoError(t, err)
	return id
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, Migrate(context.Background(), s))

	tables, err := QueryMaps(context.Background(), s.DB,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('products', 'suppliers', 'purchases', 'sales') ORDER BY name`)
	require.NoError(t, err)
	require.Len(t, tables, 4)
	assert.Equal(t, "products", tables[0]["name"])
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestInsertAndQueryOne(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := insertProduct(t, s.DB, "Widget")
	assert.Equal(t, int64(1), id)

	row, err := QueryOne(ctx, s.DB, `SELECT id, name, quantity_in_stock FROM products WHERE id = ?`, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", row["name"])
	assert.EqualValues(t, 0, row["quantity_in_stock"])

	missing, err := QueryOne(ctx, s.DB, `SELECT id FROM products WHERE id = ?`, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExecReportsAffectedRows(t *testing.T) {
	s := openTestStore(t)
	id := insertProduct(t, s.DB, "Widget")

	n, err := Exec(context.Background(), s.DB, `UPDATE products SET reorder_level = ? WHERE id = ?`, 4, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Exec(context.Background(), s.DB, `DELETE FROM products WHERE id = ?`, 42)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTranslateErrorUniqueViolation(t *testing.T) {
	s := openTestStore(t)
	insertProduct(t, s.DB, "Widget")

	now := FormatTime(time.Now())
	_, err := Insert(context.Background(), s.DB,
		`INSERT INTO products (name, unit_price, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
		"Widget", "2", now, now)
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))

	translated := TranslateError("create product", err)
	assert.IsType(t, &apperror.ConstraintError{}, translated)
}

func TestForeignKeysAreEnforced(t *testing.T) {
	s := openTestStore(t)

	_, err := Insert(context.Background(), s.DB,
		`INSERT INTO sales (product_id, quantity, unit_price, sold_at) VALUES (?, ?, ?, ?) RETURNING id`,
		404, 1, "1", FormatTime(time.Now()))
	require.Error(t, err)
	assert.IsType(t, &apperror.ConstraintError{}, TranslateError("create sale", err))
}

func TestTranslateErrorPassesAppErrorsAndWrapsOthers(t *testing.T) {
	notFound := apperror.NewNotFoundError("product 1")
	assert.Same(t, notFound, TranslateError("x", notFound))

	assert.IsType(t, &apperror.InternalError{}, TranslateError("x", errors.New("disk I/O error")))
	assert.NoError(t, TranslateError("x", nil))
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(q Querier) error {
		insertProduct(t, q, "Ghost")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats["products"])

	require.NoError(t, s.RunInTx(ctx, func(q Querier) error {
		insertProduct(t, q, "Kept")
		return nil
	}))

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats["products"])
	assert.Equal(t, DriverSQLite, stats["driver"])
}

func TestTimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 890000000, time.FixedZone("X", 3600))

	s := FormatTime(ts)
	assert.Equal(t, "2026-03-04T04:06:07.890000Z", s)

	parsed, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	parsed, err = ParseTime("2026-03-04T04:06:07Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
}

func TestMigrationsFSPerDriver(t *testing.T) {
	tests := []struct {
		driver  string
		dialect goose.Dialect
	}{
		{DriverSQLite, goose.DialectSQLite3},
		{DriverPostgres, goose.DialectPostgres},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			fsys, dialect, err := MigrationsFS(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialect)

			files, err := fs.Glob(fsys, "*.sql")
			require.NoError(t, err)
			assert.Contains(t, files, "00001_create_inventory.sql")
		})
	}
}
