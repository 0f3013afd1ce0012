package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"stockledger/internal/pkg/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know yet.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Options describes how to reach the store.
type Options struct {
	Driver string // sqlite or postgres
	DSN    string // file path for sqlite, connection URL for postgres
	Logger logger.Logger
}

// Store is the open relational store shared by every repository.
type Store struct {
	DB     *sqlx.DB
	Driver string
	Path   string // store file, empty for postgres
	logger logger.Logger
}

// Open connects to the store and checks it with a ping. sqlite runs with
// foreign keys enforced and a single pooled connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	dsn := opts.DSN
	switch opts.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(opts.DSN)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	db, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", opts.Driver, err)
	}

	s := &Store{DB: db, Driver: opts.Driver, logger: log}
	if opts.Driver == DriverSQLite {
		s.Path = opts.DSN
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	log.Info("store opened", map[string]interface{}{"driver": opts.Driver, "path": s.Path})
	return s, nil
}

func sqliteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close releases the pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// RunInTx runs fn inside one transaction. The transaction commits only when
// fn returns nil.
func (s *Store) RunInTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", err)
		return TranslateError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", err)
		return TranslateError("commit transaction", err)
	}
	return nil
}

// Stats returns the row count of every table.
func (s *Store) Stats(ctx context.Context) (map[string]interface{}, error) {
	row, err := QueryOne(ctx, s.DB, `
		SELECT
			(SELECT COUNT(*) FROM products)  AS products,
			(SELECT COUNT(*) FROM suppliers) AS suppliers,
			(SELECT COUNT(*) FROM purchases) AS purchases,
			(SELECT COUNT(*) FROM sales)     AS sales`)
	if err != nil {
		return nil, TranslateError("read store stats", err)
	}
	if row == nil {
		row = map[string]interface{}{}
	}
	row["driver"] = s.Driver
	return row, nil
}
