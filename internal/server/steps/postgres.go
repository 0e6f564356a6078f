package steps

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry.Steps < 0 {
		return nil, common.ErrInvalidInput
	}

	e := *entry
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query :=
		`INSERT INTO step_entries (id, user_id, date, steps)
		 VALUES ($1, $2, $3, $4)
		 RETURNING date
		 `

	// date defaults to now() when the caller left it zero
	var err error
	if e.Date.IsZero() {
		query =
			`INSERT INTO step_entries (id, user_id, steps)
			 VALUES ($1, $2, $3)
			 RETURNING date
			 `
		err = r.db.QueryRowContext(ctx, query, e.ID, e.UserID, e.Steps).Scan(&e.Date)
	} else {
		err = r.db.QueryRowContext(ctx, query, e.ID, e.UserID, e.Date, e.Steps).Scan(&e.Date)
	}

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Entry, error) {
	// seq is the insertion counter: it breaks date ties in insertion order.
	query :=
		`SELECT id, user_id, date, steps FROM step_entries
		 WHERE user_id = $1
		 ORDER BY date DESC, seq ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan step entry: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate step entries: %w", err)
	}

	return result, nil
}

// Dump exports the whole ledger in insertion order, for backups.
func (r *PostgresRepository) Dump(ctx context.Context) ([]Entry, error) {
	query :=
		`SELECT id, user_id, date, steps FROM step_entries
		 ORDER BY seq ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan step entry: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate step entries: %w", err)
	}

	return result, nil
}
