package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/steptrack/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx), so callers can compose several writes into one transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns the cached value for key, or (nil, nil) if the key is absent.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `select value from cache where key=?`
	row := r.db.QueryRowContext(ctx, query, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return value, nil
}

// Set upserts the value stored under key.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `insert into cache (key, value) values (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

// Delete removes key from the cache. Deleting an absent key is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	query := `delete from cache where key=?`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	query := `delete from cache`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
