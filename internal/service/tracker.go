package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/schedule"
	"github.com/alexanderramin/syllabus/internal/state"
)

// Tracker owns the single state tree. Every action goes through Dispatch,
// which reduces under a lock and then writes the full state through to the
// store unless the action is exempt.
type Tracker struct {
	mu       sync.Mutex
	store    repository.BlobStore
	key      string
	state    domain.AppState
	idx      state.Index
	ids      state.IDGenerator
	clock    func() time.Time
	observer TrackerObserver
	logger   *slog.Logger
}

type TrackerOption func(*Tracker)

func WithStorageKey(key string) TrackerOption {
	return func(t *Tracker) {
		if key != "" {
			t.key = key
		}
	}
}

func WithIDGenerator(ids state.IDGenerator) TrackerOption {
	return func(t *Tracker) {
		t.ids = ids
	}
}

func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.clock = now
	}
}

func WithObserver(o TrackerObserver) TrackerOption {
	return func(t *Tracker) {
		if o != nil {
			t.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTracker starts from seed state; call Load to restore persisted data.
func NewTracker(store repository.BlobStore, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:    store,
		key:      config.DefaultStorageKey,
		ids:      state.UUIDGenerator{},
		clock:    time.Now,
		observer: NoopObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state = domain.SeedState(schedule.CurrentDate(t.clock()))
	t.idx = state.NewIndex(t.state.Subjects)
	return t
}

// Load restores the persisted state. A missing or unreadable blob leaves the
// tracker on seed defaults; the reason is logged, never returned.
func (t *Tracker) Load(ctx context.Context) domain.AppState {
	payload, ok := t.readStored(ctx)
	if !ok {
		payload = domain.SeedState("")
	}
	return t.Dispatch(ctx, state.LoadFromStorage{State: payload})
}

func (t *Tracker) readStored(ctx context.Context) (domain.AppState, bool) {
	data, err := t.store.Get(ctx, t.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			t.logger.InfoContext(ctx, "no saved state, starting fresh", "key", t.key)
		} else {
			t.logger.WarnContext(ctx, "reading saved state failed", "key", t.key, "error", err)
		}
		return domain.AppState{}, false
	}
	var saved domain.AppState
	if err := json.Unmarshal(data, &saved); err != nil {
		t.logger.WarnContext(ctx, "saved state is not valid JSON, starting fresh", "key", t.key, "error", err)
		return domain.AppState{}, false
	}
	if saved.Subjects == nil {
		t.logger.WarnContext(ctx, "saved state has no subjects, starting fresh", "key", t.key)
		return domain.AppState{}, false
	}
	return saved, true
}

// Dispatch applies a and returns the new state. Storage failures are
// reported to the observer only; the in-memory update always happens.
func (t *Tracker) Dispatch(ctx context.Context, a state.Action) domain.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()
	env := state.Env{Now: t.clock(), IDs: t.ids}
	next := state.ReduceIndexed(t.state, t.idx, a, env)
	t.state = next
	t.idx = state.NewIndex(next.Subjects)

	event := DispatchEvent{Action: a.Type(), StartedAt: start}
	if state.Persists(a) {
		event.Persisted = true
		writeStart := time.Now()
		event.PersistErr = t.persist(ctx, next)
		event.PersistDuration = time.Since(writeStart)
	}
	event.Duration = time.Since(start)
	t.observer.ObserveDispatch(ctx, event)
	return next
}

func (t *Tracker) persist(ctx context.Context, s domain.AppState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return t.store.Put(ctx, t.key, data)
}

// State returns the current snapshot. Callers must not modify its slices.
func (t *Tracker) State() domain.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Chapter resolves a chapter id in the current snapshot.
func (t *Tracker) Chapter(id string) (domain.Subject, domain.Chapter, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idx.Chapter(t.state, id)
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time {
	return t.clock()
}

// StorageKey returns the key the state is persisted under.
func (t *Tracker) StorageKey() string {
	return t.key
}
