package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
)

var testNow = time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

func testEnv() Env {
	return Env{Now: testNow, IDs: NewSequenceGenerator()}
}

// reduceAll applies actions in order with a shared env.
func reduceAll(s domain.AppState, env Env, actions ...Action) domain.AppState {
	for _, a := range actions {
		s = Reduce(s, a, env)
	}
	return s
}

// withChapter returns a seed state holding one physics chapter with the
// given activity names, plus the chapter id.
func withChapter(t *testing.T, env Env, activities ...string) (domain.AppState, string) {
	t.Helper()
	s := Reduce(domain.SeedState("x"), AddChapter{SubjectID: "physics", Name: "Kinematics"}, env)
	require.Len(t, s.Subjects[0].Chapters, 1)
	chID := s.Subjects[0].Chapters[0].ID
	for _, name := range activities {
		s = Reduce(s, AddActivity{ChapterID: chID, Name: name}, env)
	}
	return s, chID
}

func TestScenario_FirstActivityCompletesEverything(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env, "Notes")
	actID := s.Subjects[0].Chapters[0].Activities[0].ID

	s = Reduce(s, ToggleActivity{ChapterID: chID, ActivityID: actID}, env)

	assert.Equal(t, 100, progress.SubjectProgress(s.Subjects[0].Chapters))
	assert.Equal(t, 100, progress.OverallProgress(s.Subjects))
}

func TestAddChapter(t *testing.T) {
	env := testEnv()
	s := Reduce(domain.SeedState("x"), AddChapter{SubjectID: "chemistry", Name: " Mole Concept ", Difficulty: "hard"}, env)

	ch := s.Subjects[1].Chapters[0]
	assert.Equal(t, "chapter-1", ch.ID)
	assert.Equal(t, "Mole Concept", ch.Name)
	assert.Equal(t, "chemistry", ch.Subject)
	assert.Equal(t, domain.DifficultyHard, ch.Difficulty)
	assert.NotNil(t, ch.Activities)
	assert.Empty(t, ch.Activities)
}

func TestAddChapter_DefaultsDifficulty(t *testing.T) {
	s := Reduce(domain.SeedState("x"), AddChapter{SubjectID: "physics", Name: "Optics"}, testEnv())
	assert.Equal(t, domain.DifficultyNone, s.Subjects[0].Chapters[0].Difficulty)
}

func TestAddChapter_Ignored(t *testing.T) {
	seed := domain.SeedState("x")
	cases := map[string]AddChapter{
		"unknown subject": {SubjectID: "biology", Name: "Cells"},
		"blank name":      {SubjectID: "physics", Name: "   "},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, seed, Reduce(seed, a, testEnv()))
		})
	}
}

func TestToggleActivity_Idempotent(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env, "Notes", "DPP")
	actID := s.Subjects[0].Chapters[0].Activities[1].ID

	twice := reduceAll(s, env,
		ToggleActivity{ChapterID: chID, ActivityID: actID},
		ToggleActivity{ChapterID: chID, ActivityID: actID},
	)
	assert.Equal(t, s, twice)
}

func TestChapterActions_FindChapterInAnySubject(t *testing.T) {
	env := testEnv()
	s := Reduce(domain.SeedState("x"), AddChapter{SubjectID: "maths", Name: "Limits"}, env)
	s.ActiveSubject = "physics"
	chID := s.Subjects[2].Chapters[0].ID

	s = reduceAll(s, env,
		RenameChapter{ChapterID: chID, Name: "Limits and Continuity"},
		SetChapterDifficulty{ChapterID: chID, Difficulty: domain.DifficultyMedium},
		SetChapterTargetDate{ChapterID: chID, TargetDate: "2026-11-01"},
	)

	ch := s.Subjects[2].Chapters[0]
	assert.Equal(t, "Limits and Continuity", ch.Name)
	assert.Equal(t, domain.DifficultyMedium, ch.Difficulty)
	assert.Equal(t, "2026-11-01", ch.TargetDate)
}

func TestSetChapterDifficulty_UnknownNormalized(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env)
	s = Reduce(s, SetChapterDifficulty{ChapterID: chID, Difficulty: "brutal"}, env)
	assert.Equal(t, domain.DifficultyNone, s.Subjects[0].Chapters[0].Difficulty)
}

func TestDeleteChapter(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env, "Notes")
	s = Reduce(s, DeleteChapter{ChapterID: chID}, env)
	assert.Empty(t, s.Subjects[0].Chapters)
}

func TestActivityActions(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env, "Notes", "DPP", "PYQ")
	acts := s.Subjects[0].Chapters[0].Activities

	s = reduceAll(s, env,
		ToggleAllActivities{ChapterID: chID, Completed: true},
		RenameActivity{ChapterID: chID, ActivityID: acts[0].ID, Name: "Class notes"},
		DeleteActivity{ChapterID: chID, ActivityID: acts[1].ID},
	)

	got := s.Subjects[0].Chapters[0].Activities
	require.Len(t, got, 2)
	assert.Equal(t, "Class notes", got[0].Name)
	assert.Equal(t, "PYQ", got[1].Name)
	assert.True(t, got[0].Completed)
	assert.True(t, got[1].Completed)

	s = Reduce(s, ToggleAllActivities{ChapterID: chID, Completed: false}, env)
	assert.Equal(t, 0, progress.ChapterProgress(s.Subjects[0].Chapters[0].Activities))
}

func TestMissingTargets_AreNoOps(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env, "Notes")
	actions := []Action{
		ToggleActivity{ChapterID: chID, ActivityID: "nope"},
		ToggleActivity{ChapterID: "nope", ActivityID: "nope"},
		RenameChapter{ChapterID: "nope", Name: "x"},
		DeleteChapter{ChapterID: "nope"},
		DeleteActivity{ChapterID: chID, ActivityID: "nope"},
		AddActivity{ChapterID: "nope", Name: "x"},
		MarkChapterRevised{ChapterID: "nope"},
		UndoChapterRevision{ChapterID: chID},
		EditTest{TestID: "nope", Test: domain.Test{Name: "x"}},
		DeleteTest{TestID: "nope"},
		DeleteSubject{SubjectID: "nope"},
		RenameActivity{ChapterID: chID, ActivityID: "nope", Name: "x"},
	}
	for _, a := range actions {
		assert.Equal(t, s, Reduce(s, a, env), a.Type())
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env, "Notes", "DPP")
	s = Reduce(s, AddTest{Test: domain.Test{Name: "Mock 1", Subjects: []domain.TestSubject{{Name: "Physics"}}}}, env)
	s = Reduce(s, MarkChapterRevised{ChapterID: chID}, env)
	before := deepCopy(s)
	actID := s.Subjects[0].Chapters[0].Activities[0].ID
	testID := s.Tests[0].ID

	actions := []Action{
		ToggleActivity{ChapterID: chID, ActivityID: actID},
		ToggleAllActivities{ChapterID: chID, Completed: true},
		RenameActivity{ChapterID: chID, ActivityID: actID, Name: "x"},
		DeleteActivity{ChapterID: chID, ActivityID: actID},
		AddActivity{ChapterID: chID, Name: "x"},
		RenameChapter{ChapterID: chID, Name: "x"},
		DeleteChapter{ChapterID: chID},
		MarkChapterRevised{ChapterID: chID},
		UndoChapterRevision{ChapterID: chID},
		ScheduleRevision{ChapterID: chID, Date: "2026-10-20"},
		AddSubject{Name: "Biology", ShortName: "B"},
		DeleteSubject{SubjectID: "physics"},
		EditTest{TestID: testID, Test: domain.Test{Name: "x", Subjects: []domain.TestSubject{{Name: "y"}}}},
		DeleteTest{TestID: testID},
		AddTest{Test: domain.Test{Name: "Mock 2"}},
		SetUserProfile{Profile: domain.UserProfile{Name: "Asha", ExamDate: "2027-01-20"}},
	}
	for _, a := range actions {
		_ = Reduce(s, a, env)
		require.Equal(t, before, s, "%s mutated its input", a.Type())
	}
}

func TestReduce_SharesUntouchedSubtrees(t *testing.T) {
	env := testEnv()
	s := reduceAll(domain.SeedState("x"), env,
		AddChapter{SubjectID: "physics", Name: "Optics"},
		AddChapter{SubjectID: "chemistry", Name: "Bonding"},
	)
	chID := s.Subjects[0].Chapters[0].ID
	next := Reduce(s, RenameChapter{ChapterID: chID, Name: "Ray Optics"}, env)

	assert.Same(t, &s.Subjects[1].Chapters[0], &next.Subjects[1].Chapters[0])
	assert.NotSame(t, &s.Subjects[0].Chapters[0], &next.Subjects[0].Chapters[0])
}

func TestNavigation(t *testing.T) {
	env := testEnv()
	s := domain.SeedState("x")

	s = Reduce(s, ToggleSidebar{}, env)
	assert.True(t, s.SidebarOpen)

	s = Reduce(s, SetCurrentPage{Page: domain.PageRevision}, env)
	assert.Equal(t, domain.PageRevision, s.CurrentPage)
	assert.False(t, s.SidebarOpen, "navigation closes the menu")

	s = Reduce(s, SetCurrentPage{Page: "settings"}, env)
	assert.Equal(t, domain.PageRevision, s.CurrentPage)

	s = Reduce(s, SetActiveSubject{SubjectID: "maths"}, env)
	assert.Equal(t, "maths", s.ActiveSubject)

	s = Reduce(s, ToggleDarkMode{}, env)
	assert.True(t, s.IsDarkMode)

	s = Reduce(s, SetLoading{Loading: true}, env)
	assert.True(t, s.Loading)
}

func TestAddSubject(t *testing.T) {
	env := testEnv()
	s := Reduce(domain.SeedState("x"), AddSubject{Name: "Biology", ShortName: "Bio"}, env)
	require.Len(t, s.Subjects, 4)
	assert.Equal(t, "subject-1", s.Subjects[3].ID)
	assert.Equal(t, "Bio", s.Subjects[3].ShortName)
	assert.NotNil(t, s.Subjects[3].Chapters)

	seed := domain.SeedState("x")
	assert.Equal(t, seed, Reduce(seed, AddSubject{Name: "Biology", ShortName: "BIOL"}, env))
	assert.Equal(t, seed, Reduce(seed, AddSubject{Name: "", ShortName: "B"}, env))
}

func TestDeleteSubject_ReassignsActive(t *testing.T) {
	env := testEnv()
	s := domain.SeedState("x")

	s = Reduce(s, DeleteSubject{SubjectID: "physics"}, env)
	assert.Equal(t, "chemistry", s.ActiveSubject)
	assert.NotNil(t, s.FindSubject(s.ActiveSubject))

	s = Reduce(s, SetActiveSubject{SubjectID: "maths"}, env)
	s = Reduce(s, DeleteSubject{SubjectID: "chemistry"}, env)
	assert.Equal(t, "maths", s.ActiveSubject, "deleting an inactive subject keeps the selection")

	s = Reduce(s, DeleteSubject{SubjectID: "maths"}, env)
	assert.Empty(t, s.Subjects)
	assert.Equal(t, domain.FallbackSubjectID, s.ActiveSubject)
}

func TestSetUserProfile_OverridesDeadline(t *testing.T) {
	env := testEnv()
	s := Reduce(domain.SeedState("x"), SetTargetDeadline{Date: "2026-12-01"}, env)
	assert.Equal(t, "2026-12-01", s.TargetDeadline)

	profile := domain.UserProfile{Name: "Asha", Exam: "JEE Main", Year: "2027", ExamDate: "2027-01-20"}
	s = Reduce(s, SetUserProfile{Profile: profile}, env)
	require.NotNil(t, s.UserProfile)
	assert.Equal(t, profile, *s.UserProfile)
	assert.Equal(t, "2027-01-20", s.TargetDeadline)
}

func TestMarkAndUndoRevision(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env)
	original := s

	s = Reduce(s, MarkChapterRevised{ChapterID: chID}, env)
	ch := s.Subjects[0].Chapters[0]
	assert.Equal(t, 1, ch.RevisionCount)
	assert.Equal(t, "2026-10-15T10:30:00Z", ch.LastRevisedDate)
	require.Len(t, ch.RevisionHistory, 1)
	assert.Equal(t, "2026-10-15", ch.RevisionHistory[0].Date)
	assert.Equal(t, "10:30", ch.RevisionHistory[0].Time)
	assert.Contains(t, ch.RevisionHistory[0].ID, PrefixRevision+"-")

	s = Reduce(s, UndoChapterRevision{ChapterID: chID}, env)
	ch = s.Subjects[0].Chapters[0]
	assert.Equal(t, 0, ch.RevisionCount)
	assert.Empty(t, ch.RevisionHistory)
	assert.Empty(t, ch.LastRevisedDate)
	assert.Equal(t, original.Subjects[0].Chapters[0].LastRevisedDate, ch.LastRevisedDate)
}

func TestUndoRevision_RestoresPreviousEntry(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env)

	s = Reduce(s, MarkChapterRevised{ChapterID: chID}, env)
	later := Env{Now: testNow.Add(48 * time.Hour), IDs: env.IDs}
	s = Reduce(s, MarkChapterRevised{ChapterID: chID}, later)
	s = Reduce(s, UndoChapterRevision{ChapterID: chID}, later)

	ch := s.Subjects[0].Chapters[0]
	assert.Equal(t, 1, ch.RevisionCount)
	require.Len(t, ch.RevisionHistory, 1)
	assert.Equal(t, "2026-10-15T10:30:00Z", ch.LastRevisedDate)
}

func TestUndoRevision_FloorsCount(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env)
	s.Subjects[0].Chapters[0].RevisionHistory = []domain.RevisionEntry{{ID: "r", Date: "2026-10-01", Time: "09:00"}}

	s = Reduce(s, UndoChapterRevision{ChapterID: chID}, env)
	ch := s.Subjects[0].Chapters[0]
	assert.Equal(t, 0, ch.RevisionCount)
	assert.Empty(t, ch.RevisionHistory)
}

func TestScheduleAndCancelRevision(t *testing.T) {
	env := testEnv()
	s, chID := withChapter(t, env)

	s = Reduce(s, ScheduleRevision{ChapterID: chID, Date: "2026-10-20", Time: "18:00", EnableNotification: true}, env)
	ch := s.Subjects[0].Chapters[0]
	assert.Equal(t, "2026-10-20", ch.ScheduledRevisionDate)
	assert.Equal(t, "18:00", ch.ScheduledRevisionTime)
	assert.True(t, ch.NotificationEnabled)

	s = Reduce(s, CancelRevisionSchedule{ChapterID: chID}, env)
	ch = s.Subjects[0].Chapters[0]
	assert.Empty(t, ch.ScheduledRevisionDate)
	assert.Empty(t, ch.ScheduledRevisionTime)
	assert.False(t, ch.NotificationEnabled)
}

func TestTestActions(t *testing.T) {
	env := testEnv()
	mock := domain.Test{Name: "Mock 1", TotalQuestions: 25, Correct: 18, Incorrect: 5, Unattempted: 2, TotalMarks: 67, TotalTime: "1h"}

	s := Reduce(domain.SeedState("x"), AddTest{Test: mock}, env)
	require.Len(t, s.Tests, 1)
	added := s.Tests[0]
	assert.Equal(t, "test-1", added.ID)
	assert.Equal(t, "2026-10-15T10:30:00Z", added.CreatedAt)

	edited := mock
	edited.Name = "Mock 1 (retake)"
	s = Reduce(s, EditTest{TestID: added.ID, Test: edited}, env)
	assert.Equal(t, "Mock 1 (retake)", s.Tests[0].Name)
	assert.Equal(t, added.ID, s.Tests[0].ID)
	assert.Equal(t, added.CreatedAt, s.Tests[0].CreatedAt)

	s = Reduce(s, DeleteTest{TestID: added.ID}, env)
	assert.Empty(t, s.Tests)
}

func TestEditTest_LegacyRecordMatchedByCreatedAt(t *testing.T) {
	env := testEnv()
	s := domain.SeedState("x")
	s.Tests = []domain.Test{{Name: "Old", CreatedAt: "2025-01-01T00:00:00Z"}}

	s = Reduce(s, EditTest{TestID: "2025-01-01T00:00:00Z", Test: domain.Test{Name: "Renamed"}}, env)
	assert.Equal(t, "Renamed", s.Tests[0].Name)
	assert.Equal(t, "2025-01-01T00:00:00Z", s.Tests[0].CreatedAt)
}

func TestImportData_ReplacesAndResets(t *testing.T) {
	env := testEnv()
	current := domain.SeedState("old")
	current.IsDarkMode = true

	payload := domain.AppState{
		Subjects: []domain.Subject{{
			ID: "bio", Name: "Biology", ShortName: "B",
			Chapters: []domain.Chapter{{ID: "c1", Name: "Cells", Activities: []domain.Activity{{ID: "a1", Completed: true}}}},
		}},
		ActiveSubject:  "bio",
		SidebarOpen:    true,
		CurrentPage:    domain.PageRevision,
		CurrentDate:    "1st Jan, 20",
		TargetDeadline: "2027-01-20",
	}
	s := Reduce(current, ImportData{State: payload}, env)

	assert.Equal(t, domain.PageChecklist, s.CurrentPage)
	assert.False(t, s.SidebarOpen)
	assert.Equal(t, "15th Oct, 26", s.CurrentDate)
	assert.Equal(t, "2027-01-20", s.TargetDeadline)
	assert.Equal(t, "bio", s.ActiveSubject)
	require.Len(t, s.Subjects, 1)
	assert.Equal(t, domain.DifficultyNone, s.Subjects[0].Chapters[0].Difficulty)
	assert.True(t, s.IsDarkMode, "theme is not part of a backup")
}

func TestLoadFromStorage_KeepsPage(t *testing.T) {
	env := testEnv()
	payload := domain.SeedState("old")
	payload.CurrentPage = domain.PageTest
	payload.Loading = true

	s := Reduce(domain.SeedState(""), LoadFromStorage{State: payload}, env)
	assert.Equal(t, domain.PageTest, s.CurrentPage)
	assert.Equal(t, "15th Oct, 26", s.CurrentDate)
	assert.False(t, s.Loading)
}

func TestUpdateCurrentDate(t *testing.T) {
	s := Reduce(domain.SeedState("old"), UpdateCurrentDate{}, testEnv())
	assert.Equal(t, "15th Oct, 26", s.CurrentDate)
}

func TestPersists(t *testing.T) {
	assert.False(t, Persists(UpdateCurrentDate{}))
	assert.False(t, Persists(LoadFromStorage{}))
	assert.True(t, Persists(ToggleActivity{}))
	assert.True(t, Persists(ImportData{}))
	assert.True(t, Persists(SetCurrentPage{}))
}

func TestSequenceGenerator_Unique(t *testing.T) {
	g := NewSequenceGenerator()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.NewID(PrefixActivity)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestUUIDGenerator_Prefix(t *testing.T) {
	id := UUIDGenerator{}.NewID(PrefixChapter)
	assert.Regexp(t, `^chapter-[0-9a-f-]{36}$`, id)
}

func TestIndex(t *testing.T) {
	env := testEnv()
	s := reduceAll(domain.SeedState("x"), env,
		AddChapter{SubjectID: "physics", Name: "Optics"},
		AddChapter{SubjectID: "maths", Name: "Limits"},
	)
	idx := NewIndex(s.Subjects)
	assert.Equal(t, 2, idx.Len())

	subj, ch, ok := idx.Chapter(s, s.Subjects[2].Chapters[0].ID)
	require.True(t, ok)
	assert.Equal(t, "maths", subj.ID)
	assert.Equal(t, "Limits", ch.Name)

	_, _, ok = idx.Chapter(s, "missing")
	assert.False(t, ok)
}
