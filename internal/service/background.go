package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/state"
)

// Worker is a long-running loop that stops when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context) error
}

// RunBackground refreshes the current date every refresh interval and runs
// the given workers alongside. onChange, when set, sees every refreshed
// state. It returns once ctx is done and all workers have exited.
func RunBackground(ctx context.Context, tracker *Tracker, refresh time.Duration, onChange func(domain.AppState), workers ...Worker) error {
	g, ctx := errgroup.WithContext(ctx)

	if refresh > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(refresh)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					next := tracker.Dispatch(ctx, state.UpdateCurrentDate{})
					if onChange != nil {
						onChange(next)
					}
				}
			}
		})
	}
	for _, w := range workers {
		if w == nil {
			continue
		}
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
