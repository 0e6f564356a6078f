package steps

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/steptrack/internal/common"
)

// InMemoryRepository is the mock ledger backend. Entries live in a slice in
// insertion order; every successful append is written through the
// Snapshotter before it is acknowledged, so a restart never loses an
// acknowledged entry.
type InMemoryRepository struct {
	mu          sync.RWMutex
	entries     []Entry
	snapshotter Snapshotter
}

// NewInMemoryRepository creates a ledger persisted through snap. A nil
// snapshotter keeps the ledger purely in memory (tests).
func NewInMemoryRepository(snap Snapshotter) *InMemoryRepository {
	return &InMemoryRepository{snapshotter: snap}
}

// Load replaces the ledger contents with a previously snapshotted state.
// Used at startup, before any appends.
func (r *InMemoryRepository) Load(entries []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append([]Entry(nil), entries...)
}

func (r *InMemoryRepository) Append(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry.Steps < 0 {
		return nil, common.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := *entry
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	// The snapshot must include the new entry and succeed before the
	// append is acknowledged; otherwise the entry is discarded.
	if r.snapshotter != nil {
		snapshot := make([]Entry, 0, len(r.entries)+1)
		snapshot = append(snapshot, r.entries...)
		snapshot = append(snapshot, e)
		if err := r.snapshotter.Save(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStorageFailure, err)
		}
	}

	r.entries = append(r.entries, e)

	result := e
	return &result, nil
}

func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}

	// Stable keeps insertion order among entries with equal dates.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	return result, nil
}

// Dump exports the whole ledger in insertion order, for backups.
func (r *InMemoryRepository) Dump(ctx context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries...), nil
}
