package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/state"
	"github.com/alexanderramin/syllabus/internal/testutil"
)

var testNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type recordingObserver struct {
	mu       sync.Mutex
	events   []DispatchEvent
	useCases []UseCaseEvent
}

func (r *recordingObserver) ObserveDispatch(_ context.Context, e DispatchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.useCases = append(r.useCases, e)
}

func newTestTracker(store interface {
	Get(context.Context, string) ([]byte, error)
	Put(context.Context, string, []byte) error
}, obs TrackerObserver) *Tracker {
	return NewTracker(store,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(state.NewSequenceGenerator()),
		WithObserver(obs),
	)
}

func TestTracker_LoadMissingKeyUsesSeed(t *testing.T) {
	store := testutil.NewMemoryBlobStore()
	tr := newTestTracker(store, nil)

	s := tr.Load(context.Background())

	require.Len(t, s.Subjects, 3)
	assert.Equal(t, "physics", s.ActiveSubject)
	assert.Equal(t, "15th Oct, 26", s.CurrentDate)
	assert.False(t, s.Loading)
	assert.Zero(t, store.PutCount(), "loading must not write")
}

func TestTracker_LoadRestoresSavedState(t *testing.T) {
	saved := testutil.NewTestState(testutil.WithChapters("chemistry",
		testutil.NewTestChapter("chemistry", "Mole Concept", testutil.WithChapterID("ch-1"))))
	saved.ActiveSubject = "chemistry"
	saved.CurrentDate = "1st Jan, 20"
	data, err := json.Marshal(saved)
	require.NoError(t, err)

	store := testutil.NewMemoryBlobStore()
	store.Seed(config.DefaultStorageKey, data)
	tr := newTestTracker(store, nil)

	s := tr.Load(context.Background())

	assert.Equal(t, "chemistry", s.ActiveSubject)
	assert.Equal(t, "15th Oct, 26", s.CurrentDate)
	_, ch, ok := tr.Chapter("ch-1")
	require.True(t, ok)
	assert.Equal(t, "Mole Concept", ch.Name)
}

func TestTracker_LoadFallsBackOnBadData(t *testing.T) {
	cases := map[string][]byte{
		"invalid json":     []byte("{not json"),
		"missing subjects": []byte(`{"activeSubject":"maths"}`),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			store := testutil.NewMemoryBlobStore()
			store.Seed(config.DefaultStorageKey, data)
			s := newTestTracker(store, nil).Load(context.Background())
			assert.Len(t, s.Subjects, 3)
			assert.Equal(t, "physics", s.ActiveSubject)
		})
	}
}

func TestTracker_LoadFallsBackOnReadError(t *testing.T) {
	store := testutil.NewMemoryBlobStore()
	store.GetErr = errors.New("disk on fire")
	s := newTestTracker(store, nil).Load(context.Background())
	assert.Len(t, s.Subjects, 3)
}

func TestTracker_WriteThroughPerPersistingAction(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryBlobStore()
	tr := newTestTracker(store, nil)
	tr.Load(ctx)

	s := tr.Dispatch(ctx, state.AddChapter{SubjectID: "physics", Name: "Kinematics"})
	chID := s.Subjects[0].Chapters[0].ID
	tr.Dispatch(ctx, state.AddActivity{ChapterID: chID, Name: "Notes"})
	tr.Dispatch(ctx, state.UpdateCurrentDate{})
	tr.Dispatch(ctx, state.ToggleDarkMode{})
	tr.Dispatch(ctx, state.SetLoading{Loading: true})

	assert.Equal(t, 4, store.PutCount())

	stored, err := store.Get(ctx, config.DefaultStorageKey)
	require.NoError(t, err)
	var got domain.AppState
	require.NoError(t, json.Unmarshal(stored, &got))
	assert.Equal(t, tr.State(), got)
}

func TestTracker_StoredBlobIsLatestState(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryBlobStore()
	tr := newTestTracker(store, nil)
	tr.Load(ctx)
	tr.Dispatch(ctx, state.SetTargetDeadline{Date: "2027-01-20"})

	stored, err := store.Get(ctx, config.DefaultStorageKey)
	require.NoError(t, err)
	var got domain.AppState
	require.NoError(t, json.Unmarshal(stored, &got))
	assert.Equal(t, "2027-01-20", got.TargetDeadline)
}

func TestTracker_StorageFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFailingBlobStore()
	obs := &recordingObserver{}
	tr := newTestTracker(store, obs)
	tr.Load(ctx)

	s := tr.Dispatch(ctx, state.AddChapter{SubjectID: "maths", Name: "Limits"})

	require.Len(t, s.Subjects[2].Chapters, 1)
	assert.Equal(t, s, tr.State())
	assert.Equal(t, 1, store.Attempts())

	last := obs.events[len(obs.events)-1]
	assert.Equal(t, "ADD_CHAPTER", last.Action)
	assert.True(t, last.Persisted)
	assert.ErrorIs(t, last.PersistErr, testutil.ErrInjected)
}

func TestTracker_ObserverSeesEveryDispatch(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	tr := newTestTracker(testutil.NewMemoryBlobStore(), obs)
	tr.Load(ctx)
	tr.Dispatch(ctx, state.ToggleSidebar{})

	require.Len(t, obs.events, 2)
	assert.Equal(t, "LOAD_FROM_STORAGE", obs.events[0].Action)
	assert.False(t, obs.events[0].Persisted)
	assert.Equal(t, "TOGGLE_SIDEBAR", obs.events[1].Action)
	assert.True(t, obs.events[1].Persisted)
	assert.NoError(t, obs.events[1].PersistErr)
}

func TestTracker_ConcurrentDispatchIsSerialized(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryBlobStore()
	tr := newTestTracker(store, nil)
	tr.Load(ctx)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Dispatch(ctx, state.AddChapter{SubjectID: "physics", Name: "Chapter"})
		}()
	}
	wg.Wait()

	assert.Len(t, tr.State().Subjects[0].Chapters, 20)
	assert.Equal(t, 20, store.PutCount())
}

func TestTracker_WithStorageKey(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryBlobStore()
	tr := NewTracker(store, WithStorageKey("alt"), WithClock(func() time.Time { return testNow }))
	tr.Load(ctx)
	tr.Dispatch(ctx, state.ToggleSidebar{})

	_, err := store.Get(ctx, "alt")
	assert.NoError(t, err)
	assert.Equal(t, "alt", tr.StorageKey())
}
