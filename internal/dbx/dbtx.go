// Package dbx holds the small database plumbing the client cache builds
// on: an interface (DBTX) satisfied by both *sql.DB and *sql.Tx, and a
// transaction wrapper. Repositories accept a DBTX so the same code runs
// standalone or inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the cache repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit on success, rollback on error
// or panic (the panic is rethrown). The session store uses it to write the
// token and user keys as one unit, so a crash mid-save never leaves half a
// session behind:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := cache.NewSQLiteRepository(tx)
//	    if err := repo.Set(ctx, "token", token); err != nil {
//	        return err
//	    }
//	    return repo.Set(ctx, "user", user)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
