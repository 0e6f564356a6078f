package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/steptrack/internal/server/steps"
	"github.com/dmitrijs2005/steptrack/internal/server/users"
)

// Demo account present in every fresh mock directory.
const (
	DemoUserID    = "1"
	DemoUserName  = "Test User"
	DemoUserEmail = "test@example.com"
	demoPassword  = "password123"
)

type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	steps *steps.InMemoryRepository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Steps() steps.Repository {
	return m.steps
}

// NewInMemoryRepositoryManager builds the mock backend: an in-memory user
// directory seeded with the demo account, and an in-memory ledger that
// snapshots to snapshotPath after every append. A previous snapshot at that
// path is restored; otherwise the ledger starts with one seed entry for the
// demo user.
func NewInMemoryRepositoryManager(ctx context.Context, snapshotPath string) (RepositoryManager, error) {
	userRepo := users.NewInMemoryRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo user: %w", err)
	}

	_, err = userRepo.Create(ctx, &users.User{
		ID:           DemoUserID,
		Name:         DemoUserName,
		Email:        DemoUserEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo user: %w", err)
	}

	snap := steps.NewFileSnapshotter(snapshotPath)
	stepRepo := steps.NewInMemoryRepository(snap)

	restored, err := snap.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore ledger snapshot: %w", err)
	}

	if len(restored) > 0 {
		stepRepo.Load(restored)
	} else {
		stepRepo.Load([]steps.Entry{
			{ID: "1", UserID: DemoUserID, Date: time.Now(), Steps: 5000},
		})
	}

	return &InMemoryRepositoryManager{users: userRepo, steps: stepRepo}, nil
}
