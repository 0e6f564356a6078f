package steps

import (
	"context"
)

// Repository is the step ledger. Append must durably persist the entry
// before returning; List returns a user's entries sorted by date descending,
// ties broken by insertion order (stable).
type Repository interface {
	Append(ctx context.Context, entry *Entry) (*Entry, error)
	List(ctx context.Context, userID string) ([]Entry, error)
}

// Dumper is implemented by repositories that can export the whole ledger,
// for snapshot backups.
type Dumper interface {
	Dump(ctx context.Context) ([]Entry, error)
}

// Snapshotter persists a full ledger snapshot. The in-memory repository
// calls it under its write lock after every append.
type Snapshotter interface {
	Save(ctx context.Context, entries []Entry) error
}
