package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/bloomora/pkg/retry"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMalformed         = errors.New("malformed entry")
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

type sqldb interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// kvSchemaSQLite mirrors the postgres migrations for the embedded mode.
const kvSchemaSQLite = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key   TEXT PRIMARY KEY,
		entry_value TEXT NOT NULL,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

type SQLDB struct {
	*sql.DB
	driver string
}

// NewSQLDB opens a postgres (pgx) or an embedded sqlite database and
// waits for it to answer a ping.
func NewSQLDB(ctx context.Context, driver, dsn string) (SQLDB, error) {
	const op = "SQLDB"
	log := slog.With("op", op, "driver", driver)

	db, err := openDB(driver, dsn)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: %w", op, err)
	}

	s := SQLDB{db, driver}
	if err := s.ping(ctx); err != nil {
		_ = db.Close()
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	if driver == DriverSQLite {
		if _, err := s.ExecContext(ctx, kvSchemaSQLite); err != nil {
			_ = db.Close()
			return SQLDB{}, fmt.Errorf("%s: failed to create schema: %w", op, err)
		}
	}

	log.Info("database is available")
	return s, nil
}

func openDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		connStr := stdlib.RegisterConnConfig(connConfig)
		return sql.Open("pgx", connStr)
	case DriverSQLite:
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// one connection keeps ":memory:" databases alive and serialises writers
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func (s SQLDB) ping(ctx context.Context) error {
	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
	}
	return retry.Do(ctx, retryCfg, func() error {
		return s.PingContext(ctx)
	})
}

func (s SQLDB) Driver() string {
	return s.driver
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}
