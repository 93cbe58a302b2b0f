package reminder

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// StateReader exposes the current state snapshot.
type StateReader interface {
	State() domain.AppState
}

// Recorder observes delivery attempts.
type Recorder interface {
	ObserveNotification(err error)
}

type Option func(*Runner)

func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner periodically delivers due reminders. Each tag is attempted at most
// once per calendar day.
type Runner struct {
	source   StateReader
	notifier Notifier
	interval time.Duration
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	mu    sync.Mutex
	fired map[string]string
}

func NewRunner(source StateReader, notifier Notifier, opts ...Option) *Runner {
	r := &Runner{
		source:   source,
		notifier: notifier,
		interval: time.Minute,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		fired:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run asks for permission once and then scans every interval until ctx is
// done. A denied or failed permission request makes Run return immediately.
// Run never returns an error; failures are logged.
func (r *Runner) Run(ctx context.Context) error {
	granted, err := r.notifier.RequestPermission(ctx)
	if err != nil {
		r.logger.DebugContext(ctx, "reminder permission request failed", "error", err)
		return nil
	}
	if !granted {
		r.logger.DebugContext(ctx, "reminder permission denied")
		return nil
	}

	r.Tick(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick delivers every due reminder not yet attempted today and returns how
// many were delivered.
func (r *Runner) Tick(ctx context.Context) int {
	now := r.now()
	today := now.Format(schedule.DayLayout)
	due := Due(r.source.State().Subjects, now)

	r.mu.Lock()
	defer r.mu.Unlock()
	for tag, day := range r.fired {
		if day != today {
			delete(r.fired, tag)
		}
	}

	sent := 0
	for _, n := range due {
		if r.fired[n.Tag] == today {
			continue
		}
		r.fired[n.Tag] = today
		err := r.notifier.Notify(ctx, n)
		if r.recorder != nil {
			r.recorder.ObserveNotification(err)
		}
		if err != nil {
			r.logger.WarnContext(ctx, "reminder delivery failed", "tag", n.Tag, "error", err)
			continue
		}
		r.logger.InfoContext(ctx, "reminder delivered", "tag", n.Tag)
		sent++
	}
	return sent
}
