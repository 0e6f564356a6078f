// Package client provides access to the backend step-tracking API and the
// local cache database used by the CLI.
package client

import (
	"context"

	"github.com/dmitrijs2005/steptrack/internal/client/models"
)

// Client defines the remote API operations the CLI needs.
//
// Step operations take the session token explicitly: the caller owns the
// session, the client only speaks the protocol.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	GetSteps(ctx context.Context, token string) ([]models.StepEntry, error)
	SaveSteps(ctx context.Context, token string, steps int) (*models.StepEntry, error)
	GetDailySteps(ctx context.Context, token string) (int, error)
	GetWeeklySteps(ctx context.Context, token string) ([]models.DayTotal, error)
	Ping(ctx context.Context) error
	Close() error
}
