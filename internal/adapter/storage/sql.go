package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// A SQLKV is a key-value table on a SQL database.
type SQLKV struct {
	sqldb       sqldb
	placeholder string
}

func NewSQLKV(db SQLDB) SQLKV {
	placeholder := "$"
	if db.Driver() == DriverSQLite {
		placeholder = "?"
	}
	return SQLKV{db, placeholder}
}

func (r SQLKV) Get(ctx context.Context, key string) (string, error) {
	const op = "SQLKV.Get"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(
		`SELECT entry_value FROM kv_entries WHERE entry_key = %s1;`,
		r.placeholder,
	)

	var v string
	err := r.sqldb.QueryRowContext(ctx, query, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r SQLKV) Set(ctx context.Context, key, value string) error {
	const op = "SQLKV.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES (%[1]s1, %[1]s2, CURRENT_TIMESTAMP)
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = EXCLUDED.entry_value,
			updated_at = EXCLUDED.updated_at;`,
		r.placeholder,
	)

	if _, err := r.sqldb.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r SQLKV) Delete(ctx context.Context, key string) error {
	const op = "SQLKV.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(
		`DELETE FROM kv_entries WHERE entry_key = %s1;`, r.placeholder,
	)

	if _, err := r.sqldb.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}
