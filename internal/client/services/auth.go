package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/steptrack/internal/client/client"
	"github.com/dmitrijs2005/steptrack/internal/client/models"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account on the server and persist the session.
//   - Login: authenticate and persist the session.
//   - Restore: return the session saved by a previous run, if any.
//   - Logout: drop the persisted session.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// A session that cannot be persisted is treated as a failed login: the
// storage error propagates and no partial session remains.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Restore(ctx context.Context) (string, *models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local session store.
type authService struct {
	client  client.Client
	session SessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client client.Client, session SessionStore) AuthService {
	return &authService{client: client, session: session}
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*models.AuthResult, error) {
	res, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.session.Save(ctx, res.Token, &res.User); err != nil {
		return nil, fmt.Errorf("session persist error: %w", err)
	}
	return res, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.session.Save(ctx, res.Token, &res.User); err != nil {
		return nil, fmt.Errorf("session persist error: %w", err)
	}
	return res, nil
}

// Restore returns the persisted session from a previous run, or
// ("", nil, nil) when there is none.
func (a *authService) Restore(ctx context.Context) (string, *models.User, error) {
	return a.session.Load(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
