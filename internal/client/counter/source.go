package counter

import (
	"context"
	"math/rand"
	"time"
)

// SimulatedSource emits small random step bursts at a fixed cadence. It
// stands in for a hardware pedometer in the CLI.
type SimulatedSource struct {
	Interval time.Duration
	MaxBurst int
}

// NewSimulatedSource returns a source producing up to maxBurst steps per
// interval.
func NewSimulatedSource(interval time.Duration, maxBurst int) *SimulatedSource {
	return &SimulatedSource{Interval: interval, MaxBurst: maxBurst}
}

func (s *SimulatedSource) Steps(ctx context.Context) <-chan int {
	ch := make(chan int)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				select {
				case ch <- rand.Intn(s.MaxBurst + 1):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
