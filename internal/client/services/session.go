// Package services contains application services for the StepTrack client:
// session persistence, authentication, and step tracking with a local
// mirror of the ledger.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/steptrack/internal/client/models"
	"github.com/dmitrijs2005/steptrack/internal/client/repositories/cache"
	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/dbx"
)

// Cache keys used by the session store.
const (
	sessionTokenKey = "token"
	sessionUserKey  = "user"
)

// SessionStore persists the active session (token and user) across client
// restarts.
//
// Contract:
//   - Save: persist token and user atomically; partial sessions are never
//     observable.
//   - Load: return the stored session, or ("", nil, nil) when none exists.
//   - Clear: remove the session; clearing an absent session is not an error.
type SessionStore interface {
	Save(ctx context.Context, token string, user *models.User) error
	Load(ctx context.Context) (string, *models.User, error)
	Clear(ctx context.Context) error
}

// sessionStore is the concrete SessionStore backed by the local cache DB.
type sessionStore struct {
	db *sql.DB
}

// NewSessionStore constructs a SessionStore bound to the given DB.
func NewSessionStore(db *sql.DB) SessionStore {
	return &sessionStore{db: db}
}

// Save writes token and user in a single transaction. A failure leaves the
// previous session intact and is reported as a storage failure.
func (s *sessionStore) Save(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: user marshal error: %v", common.ErrStorageFailure, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := cache.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessionTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, sessionUserKey, data)
	})
	if err != nil {
		return fmt.Errorf("%w: session save error: %v", common.ErrStorageFailure, err)
	}
	return nil
}

// Load returns the stored session. An absent session is ("", nil, nil), not
// an error.
func (s *sessionStore) Load(ctx context.Context) (string, *models.User, error) {
	repo := cache.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, sessionTokenKey)
	if err != nil {
		return "", nil, fmt.Errorf("%w: session load error: %v", common.ErrStorageFailure, err)
	}
	if len(token) == 0 {
		return "", nil, nil
	}

	data, err := repo.Get(ctx, sessionUserKey)
	if err != nil {
		return "", nil, fmt.Errorf("%w: session load error: %v", common.ErrStorageFailure, err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return "", nil, fmt.Errorf("%w: user unmarshal error: %v", common.ErrStorageFailure, err)
	}

	return string(token), &user, nil
}

// Clear removes token and user in a single transaction.
func (s *sessionStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := cache.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, sessionTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, sessionUserKey)
	})
	if err != nil {
		return fmt.Errorf("%w: session clear error: %v", common.ErrStorageFailure, err)
	}
	return nil
}
