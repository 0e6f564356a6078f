package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/steptrack/internal/client/client"
	"github.com/dmitrijs2005/steptrack/internal/client/models"
	"github.com/dmitrijs2005/steptrack/internal/client/repositories/cache"
	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/logging"
)

// Cache key holding the local mirror of the user's step entries.
const stepDataKey = "stepData"

// StepService defines step-tracking operations for the CLI. The server's
// ledger is the source of truth; a local mirror under stepDataKey keeps the
// last known entries available when the server cannot be reached. Mirror
// writes are non-critical: failures are logged and swallowed, they never
// fail the operation.
type StepService interface {
	Add(ctx context.Context, steps int) (*models.StepEntry, error)
	List(ctx context.Context) ([]models.StepEntry, error)
	DailyTotal(ctx context.Context) (int, error)
	WeeklyTotals(ctx context.Context) ([]models.DayTotal, error)
}

type stepService struct {
	client  client.Client
	session SessionStore
	cache   cache.Repository
	logger  logging.Logger
}

// NewStepService constructs a StepService bound to the given API client,
// session store and local cache.
func NewStepService(apiClient client.Client, session SessionStore, cacheRepo cache.Repository, logger logging.Logger) StepService {
	return &stepService{
		client:  apiClient,
		session: session,
		cache:   cacheRepo,
		logger:  logger.With("component", "steps"),
	}
}

// token returns the active session token, or common.ErrUnauthorized when no
// session is stored.
func (s *stepService) token(ctx context.Context) (string, error) {
	token, _, err := s.session.Load(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrUnauthorized
	}
	return token, nil
}

// Add validates and appends one entry dated now. The new entry is prepended
// to the local mirror; a mirror failure is logged and swallowed.
func (s *stepService) Add(ctx context.Context, steps int) (*models.StepEntry, error) {
	if steps < 0 {
		return nil, common.ErrInvalidInput
	}

	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.client.SaveSteps(ctx, token, steps)
	if err != nil {
		return nil, err
	}

	s.mirrorPrepend(ctx, entry)
	return entry, nil
}

// List returns the user's entries, newest first. When the server is
// unreachable the last mirrored entries are returned instead.
func (s *stepService) List(ctx context.Context) ([]models.StepEntry, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.client.GetSteps(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			s.logger.Warn(ctx, "server unreachable, serving mirrored entries")
			return s.mirrorLoad(ctx)
		}
		return nil, err
	}

	s.mirrorReplace(ctx, entries)
	return entries, nil
}

func (s *stepService) DailyTotal(ctx context.Context) (int, error) {
	token, err := s.token(ctx)
	if err != nil {
		return 0, err
	}
	return s.client.GetDailySteps(ctx, token)
}

func (s *stepService) WeeklyTotals(ctx context.Context) ([]models.DayTotal, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.GetWeeklySteps(ctx, token)
}

func (s *stepService) mirrorLoad(ctx context.Context) ([]models.StepEntry, error) {
	data, err := s.cache.Get(ctx, stepDataKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []models.StepEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *stepService) mirrorPrepend(ctx context.Context, entry *models.StepEntry) {
	entries, err := s.mirrorLoad(ctx)
	if err != nil {
		s.logger.Warn(ctx, "step mirror read failed", "error", err.Error())
		return
	}
	s.mirrorReplace(ctx, append([]models.StepEntry{*entry}, entries...))
}

func (s *stepService) mirrorReplace(ctx context.Context, entries []models.StepEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn(ctx, "step mirror marshal failed", "error", err.Error())
		return
	}
	if err := s.cache.Set(ctx, stepDataKey, data); err != nil {
		s.logger.Warn(ctx, "step mirror write failed", "error", err.Error())
	}
}
