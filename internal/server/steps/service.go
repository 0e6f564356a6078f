package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/steptrack/internal/common"
)

// Service validates appends and derives daily/weekly totals from the
// ledger. Totals are pure functions of the ledger contents and the
// reference instant: nothing is cached, every call recomputes from
// Repository.List. At the expected ledger sizes (low thousands of entries
// per user) recomputation is cheaper than owning an invalidation problem.
type Service struct {
	repo Repository
	now  func() time.Time
	loc  *time.Location
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		loc:  time.Local,
	}
}

// Today returns the current instant of the service clock. Handlers use it
// as the default reference day.
func (s *Service) Today() time.Time {
	return s.now()
}

// Add validates and appends one entry dated now. Negative step counts are
// rejected with common.ErrInvalidInput before they reach the ledger.
func (s *Service) Add(ctx context.Context, userID string, stepCount int) (*Entry, error) {
	if stepCount < 0 {
		return nil, common.ErrInvalidInput
	}

	entry := &Entry{
		UserID: userID,
		Date:   s.now(),
		Steps:  stepCount,
	}

	entry, err := s.repo.Append(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error appending step entry: %w", err)
	}

	return entry, nil
}

// List returns the user's entries, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.List(ctx, userID)
}

// DailyTotal sums the step counts of all entries whose date falls on day's
// calendar day, [00:00, 24:00) in the service location. A day with no
// entries totals zero.
func (s *Service) DailyTotal(ctx context.Context, userID string, day time.Time) (int, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error reading ledger: %w", err)
	}

	start := s.dayStart(day)
	end := start.AddDate(0, 0, 1)

	total := 0
	for _, e := range entries {
		if !e.Date.Before(start) && e.Date.Before(end) {
			total += e.Steps
		}
	}

	return total, nil
}

// WeeklyTotals returns exactly 7 points spanning [endDay-6 .. endDay],
// oldest first. Days with no entries report zero. Each point's Date is the
// day's midnight in the service location.
func (s *Service) WeeklyTotals(ctx context.Context, userID string, endDay time.Time) ([]DayTotal, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}

	end := s.dayStart(endDay)

	totals := make([]DayTotal, 0, 7)
	for i := 6; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		total := 0
		for _, e := range entries {
			if !e.Date.Before(day) && e.Date.Before(next) {
				total += e.Steps
			}
		}

		totals = append(totals, DayTotal{Date: day, Steps: total})
	}

	return totals, nil
}

func (s *Service) dayStart(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}
