// Package counter implements the automatic step counter: it accumulates
// step deltas from a source (a pedometer or a simulation) and periodically
// flushes the accumulated count to the server as one entry.
package counter

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/steptrack/internal/client/models"
	"github.com/dmitrijs2005/steptrack/internal/logging"
)

// State of the counter. The counter is either idle or counting; there are
// no other states.
type State int

const (
	Idle State = iota
	Counting
)

func (s State) String() string {
	if s == Counting {
		return "counting"
	}
	return "idle"
}

var (
	ErrAlreadyCounting = errors.New("counter is already running")
	ErrNotCounting     = errors.New("counter is not running")
)

// Flusher receives the accumulated step count. services.StepService
// satisfies this interface.
type Flusher interface {
	Add(ctx context.Context, steps int) (*models.StepEntry, error)
}

// Source emits step deltas. The channel is closed when ctx is cancelled.
type Source interface {
	Steps(ctx context.Context) <-chan int
}

// Counter accumulates deltas between flushes. A failed flush is logged and
// the accumulated count is dropped, mirroring a failed manual append; it is
// never re-sent.
type Counter struct {
	flusher  Flusher
	interval time.Duration
	logger   logging.Logger

	mu      sync.Mutex
	state   State
	pending int
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewCounter(flusher Flusher, interval time.Duration, logger logging.Logger) *Counter {
	return &Counter{
		flusher:  flusher,
		interval: interval,
		logger:   logger.With("component", "counter"),
	}
}

func (c *Counter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start switches the counter to Counting and begins consuming src. Starting
// an already counting counter fails with ErrAlreadyCounting.
func (c *Counter) Start(ctx context.Context, src Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Counting {
		return ErrAlreadyCounting
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.state = Counting
	c.pending = 0
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(runCtx, src.Steps(runCtx))
	return nil
}

// Stop switches the counter back to Idle. Whatever has accumulated since
// the last flush is flushed exactly once before Stop returns.
func (c *Counter) Stop() error {
	c.mu.Lock()
	if c.state != Counting {
		c.mu.Unlock()
		return ErrNotCounting
	}
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (c *Counter) run(ctx context.Context, deltas <-chan int) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case d, ok := <-deltas:
			if !ok {
				c.finish()
				return
			}
			if d > 0 {
				c.mu.Lock()
				c.pending += d
				c.mu.Unlock()
			}

		case <-ticker.C:
			c.flush(ctx)

		case <-ctx.Done():
			c.drain(deltas)
			c.finish()
			return
		}
	}
}

// drain collects deltas the source already emitted but the loop has not
// consumed yet, so the final flush covers every counted step.
func (c *Counter) drain(deltas <-chan int) {
	for {
		select {
		case d, ok := <-deltas:
			if !ok {
				return
			}
			if d > 0 {
				c.mu.Lock()
				c.pending += d
				c.mu.Unlock()
			}
		default:
			return
		}
	}
}

// finish performs the final flush and returns to Idle. It uses a fresh
// context: the run context is already cancelled at this point.
func (c *Counter) finish() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c.flush(ctx)

	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
}

// flush sends the accumulated count as one entry. A failure drops the
// count; it is not re-sent on the next tick.
func (c *Counter) flush(ctx context.Context) {
	c.mu.Lock()
	n := c.pending
	c.pending = 0
	c.mu.Unlock()

	if n == 0 {
		return
	}

	if _, err := c.flusher.Add(ctx, n); err != nil {
		c.logger.Warn(ctx, "step flush failed, dropping accumulated count", "steps", n, "error", err.Error())
		return
	}
	c.logger.Info(ctx, "steps flushed", "steps", n)
}
