package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/reminder"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/service"
	"github.com/alexanderramin/syllabus/internal/state"
	"github.com/alexanderramin/syllabus/internal/testutil"
)

var testNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

// recordingNotifier collects delivered reminders.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []reminder.Notification
}

func (r *recordingNotifier) RequestPermission(context.Context) (bool, error) { return true, nil }

func (r *recordingNotifier) Notify(_ context.Context, n reminder.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func newTracker(t *testing.T, store repository.BlobStore, opts ...testutil.StateOption) *service.Tracker {
	t.Helper()
	if len(opts) > 0 {
		raw, err := json.Marshal(testutil.NewTestState(opts...))
		require.NoError(t, err)
		require.NoError(t, store.Put(context.Background(), config.DefaultStorageKey, raw))
	}
	tracker := service.NewTracker(store,
		service.WithClock(func() time.Time { return testNow }),
		service.WithIDGenerator(state.NewSequenceGenerator()),
	)
	tracker.Load(context.Background())
	return tracker
}

// testApp wires an App over an in-memory blob store. Backups have no
// snapshot storage.
func testApp(t *testing.T, opts ...testutil.StateOption) *App {
	t.Helper()
	tracker := newTracker(t, testutil.NewMemoryBlobStore(), opts...)
	return &App{
		Tracker:  tracker,
		Backup:   service.NewBackupService(tracker, nil, 0),
		Notifier: &recordingNotifier{},
		Config:   config.DefaultConfig(),
	}
}

// testAppWithDB backs the tracker with SQLite so import snapshots work.
func testAppWithDB(t *testing.T, opts ...testutil.StateOption) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	tracker := newTracker(t, repository.NewSQLiteBlobStore(database), opts...)
	return &App{
		Tracker:  tracker,
		Backup:   service.NewBackupService(tracker, testutil.NewTestUoW(database), 3),
		Notifier: &recordingNotifier{},
		Config:   config.DefaultConfig(),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func findChapter(t *testing.T, app *App, name string) domain.Chapter {
	t.Helper()
	ref, err := resolveChapter(app.Tracker.State(), "", name)
	require.NoError(t, err)
	return ref.Chapter
}

func kinematics(opts ...testutil.ChapterOption) testutil.StateOption {
	return testutil.WithChapters("physics", testutil.NewTestChapter("physics", "Kinematics", opts...))
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "syllabus")
	assert.Contains(t, output, "chapter")
}

func TestTUICmd_RequiresInteractiveTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- status ---

func TestStatusCmd_ShowsCountdownAndSubjects(t *testing.T) {
	app := testApp(t, testutil.WithProfile(domain.UserProfile{
		Name: "Asha", Exam: "JEE Advanced", Year: "2027", ExamDate: "2026-10-25",
	}))

	output, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Asha")
	assert.Contains(t, output, "10 days left")
	assert.Contains(t, output, "Physics")
	assert.Contains(t, output, "Mathematics")
}

func TestPriorityCmd_RejectsUnknownDifficulty(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "priority", "--difficulty", "brutal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid difficulty")
}

func TestPriorityCmd_FiltersActiveSubject(t *testing.T) {
	app := testApp(t,
		testutil.WithChapters("physics",
			testutil.NewTestChapter("physics", "Rotation", testutil.WithDifficulty(domain.DifficultyHard)),
			testutil.NewTestChapter("physics", "Units", testutil.WithDifficulty(domain.DifficultyEasy)),
		),
	)

	output, err := executeCmd(t, app, "priority")
	require.NoError(t, err)
	assert.Contains(t, output, "Rotation")
	assert.NotContains(t, output, "Units")
}

// --- subjects ---

func TestSubjectCmd_AddAndUse(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "subject", "add", "Biology", "--short", "B")
	require.NoError(t, err)
	assert.Contains(t, output, "Added subject Biology [B]")

	_, err = executeCmd(t, app, "subject", "use", "biology")
	require.NoError(t, err)

	s := app.Tracker.State()
	require.Len(t, s.Subjects, 4)
	assert.Equal(t, s.Subjects[3].ID, s.ActiveSubject)
}

func TestSubjectCmd_AddRequiresShortName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "subject", "add", "Biology")
	require.Error(t, err)
	assert.Len(t, app.Tracker.State().Subjects, 3)
}

func TestSubjectCmd_RemoveNeedsConfirmation(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "subject", "rm", "Chemistry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, app.Tracker.State().Subjects, 3)

	_, err = executeCmd(t, app, "subject", "rm", "Chemistry", "--yes")
	require.NoError(t, err)
	assert.Len(t, app.Tracker.State().Subjects, 2)
}

// --- chapters and activities ---

func TestChapterCmd_AddActivitiesAndComplete(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "chapter", "add", "Kinematics", "--difficulty", "hard")
	require.NoError(t, err)
	assert.Contains(t, output, "Added chapter Kinematics to Physics")

	_, err = executeCmd(t, app, "activity", "add", "Kinematics", "Notes", "PYQs")
	require.NoError(t, err)

	ch := findChapter(t, app, "Kinematics")
	assert.Equal(t, domain.DifficultyHard, ch.Difficulty)
	require.Len(t, ch.Activities, 2)
	assert.False(t, ch.IsComplete())

	output, err = executeCmd(t, app, "chapter", "complete", "kinematics")
	require.NoError(t, err)
	assert.Contains(t, output, "Completed Kinematics (2 activities)")

	ch = findChapter(t, app, "Kinematics")
	assert.True(t, ch.IsComplete())
}

func TestChapterCmd_AddToNamedSubject(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "chapter", "add", "Thermodynamics", "--subject", "Chemistry")
	require.NoError(t, err)

	ref, err := resolveChapter(app.Tracker.State(), "chemistry", "Thermodynamics")
	require.NoError(t, err)
	assert.Equal(t, "chemistry", ref.Subject.ID)
}

func TestChapterCmd_UnknownChapter(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "chapter", "show", "Optics")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChapterCmd_TargetDate(t *testing.T) {
	app := testApp(t, kinematics())

	_, err := executeCmd(t, app, "chapter", "target", "Kinematics", "2026-11-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-01", findChapter(t, app, "Kinematics").TargetDate)

	_, err = executeCmd(t, app, "chapter", "target", "Kinematics", "--clear")
	require.NoError(t, err)
	assert.Empty(t, findChapter(t, app, "Kinematics").TargetDate)
}

func TestActivityCmd_Toggle(t *testing.T) {
	app := testApp(t, kinematics(testutil.WithActivities(0, "Notes", "PYQs")))

	output, err := executeCmd(t, app, "activity", "toggle", "Kinematics", "PYQs")
	require.NoError(t, err)
	assert.Contains(t, output, "[x] PYQs")

	ch := findChapter(t, app, "Kinematics")
	assert.False(t, ch.Activities[0].Completed)
	assert.True(t, ch.Activities[1].Completed)
}

// --- revisions ---

func TestRevisionCmd_MarkAndUndo(t *testing.T) {
	app := testApp(t, kinematics())

	output, err := executeCmd(t, app, "revision", "mark", "Kinematics")
	require.NoError(t, err)
	assert.Contains(t, output, "Revised Kinematics (1 revision)")
	ch := findChapter(t, app, "Kinematics")
	assert.Equal(t, 1, ch.RevisionCount)
	assert.Equal(t, testNow.Format(time.RFC3339), ch.LastRevisedDate)

	_, err = executeCmd(t, app, "rev", "undo", "Kinematics")
	require.NoError(t, err)
	assert.Equal(t, 0, findChapter(t, app, "Kinematics").RevisionCount)

	_, err = executeCmd(t, app, "rev", "undo", "Kinematics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no revisions to undo")
}

func TestRevisionCmd_ScheduleAndCancel(t *testing.T) {
	app := testApp(t, kinematics())

	output, err := executeCmd(t, app, "revision", "schedule", "Kinematics", "--date", "2026-10-16", "--time", "18:30")
	require.NoError(t, err)
	assert.Contains(t, output, "at 18:30")

	ch := findChapter(t, app, "Kinematics")
	assert.Equal(t, "2026-10-16", ch.ScheduledRevisionDate)
	assert.Equal(t, "18:30", ch.ScheduledRevisionTime)
	assert.True(t, ch.NotificationEnabled)

	_, err = executeCmd(t, app, "revision", "cancel", "Kinematics")
	require.NoError(t, err)
	ch = findChapter(t, app, "Kinematics")
	assert.Empty(t, ch.ScheduledRevisionDate)
	assert.False(t, ch.NotificationEnabled)
}

func TestRevisionCmd_ScheduleRejectsBadInput(t *testing.T) {
	app := testApp(t, kinematics())

	_, err := executeCmd(t, app, "revision", "schedule", "Kinematics", "--date", "16/10/2026")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "revision", "schedule", "Kinematics", "--date", "2026-10-16", "--time", "25:00")
	assert.Error(t, err)

	assert.Empty(t, findChapter(t, app, "Kinematics").ScheduledRevisionDate)
}

// --- tests ---

func TestTestCmd_AddWithFlags(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "test", "add",
		"--name", "Mock 1", "--date", "2026-10-10",
		"--correct", "50", "--incorrect", "10", "--unattempted", "15",
		"--time", "3h")
	require.NoError(t, err)
	assert.Contains(t, output, "Recorded Mock 1: 190/300 marks")

	tests := app.Tracker.State().Tests
	require.Len(t, tests, 1)
	assert.Equal(t, 75, tests[0].TotalQuestions)
	assert.Equal(t, 190, tests[0].TotalMarks)
}

func TestTestCmd_AddRejectsMismatchedBreakdown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "test", "add",
		"--name", "Mock 1", "--date", "2026-10-10", "--questions", "90",
		"--correct", "50", "--incorrect", "10", "--unattempted", "15",
		"--time", "3h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must equal total questions (90)")
	assert.Empty(t, app.Tracker.State().Tests)
}

func TestTestCmd_EditKeepsUnsetFields(t *testing.T) {
	app := testApp(t, testutil.WithTests(
		testutil.NewTestRecord("Mock 1", 50, 10, 15, testutil.WithTestID("test-a")),
	))

	_, err := executeCmd(t, app, "test", "edit", "Mock 1", "--name", "Mock 1 (retake)")
	require.NoError(t, err)

	tests := app.Tracker.State().Tests
	require.Len(t, tests, 1)
	assert.Equal(t, "Mock 1 (retake)", tests[0].Name)
	assert.Equal(t, "test-a", tests[0].ID)
	assert.Equal(t, 50, tests[0].Correct)
}

func TestTestCmd_AnalysisWithoutTests(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "test", "analysis")
	require.NoError(t, err)
	assert.Contains(t, output, "No tests recorded yet.")
}

// --- profile, deadline, theme, page ---

func TestProfileCmd_SetWithFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "set",
		"--name", "Asha", "--exam", "JEE Advanced", "--year", "2027", "--exam-date", "2027-05-20")
	require.NoError(t, err)

	s := app.Tracker.State()
	require.NotNil(t, s.UserProfile)
	assert.Equal(t, "Asha", s.UserProfile.Name)
	assert.Equal(t, "2027-05-20", s.TargetDeadline)
}

func TestProfileCmd_SetMissingFields(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "set", "--name", "Asha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile is missing")
	assert.Nil(t, app.Tracker.State().UserProfile)
}

func TestProfileCmd_SetMergesExistingProfile(t *testing.T) {
	app := testApp(t, testutil.WithProfile(domain.UserProfile{
		Name: "Asha", Exam: "JEE Main", Year: "2027", ExamDate: "2027-01-20",
	}))

	_, err := executeCmd(t, app, "profile", "set", "--exam", "JEE Advanced")
	require.NoError(t, err)

	p := app.Tracker.State().UserProfile
	require.NotNil(t, p)
	assert.Equal(t, "JEE Advanced", p.Exam)
	assert.Equal(t, "Asha", p.Name)
}

func TestDeadlineCmd_Set(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "deadline", "set", "30-12-2026")
	require.Error(t, err)

	output, err := executeCmd(t, app, "deadline", "set", "2026-10-20")
	require.NoError(t, err)
	assert.Contains(t, output, "5 days left")
	assert.Equal(t, "2026-10-20", app.Tracker.State().TargetDeadline)
}

func TestThemeCmd_Toggle(t *testing.T) {
	t.Cleanup(func() { formatter.ApplyTheme(false) })
	app := testApp(t)

	output, err := executeCmd(t, app, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, output, "Theme: dark")
	assert.True(t, app.Tracker.State().IsDarkMode)
}

func TestPageCmd(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "page")
	require.NoError(t, err)
	assert.Contains(t, output, "* checklist")
	assert.Contains(t, output, "Test analysis")

	_, err = executeCmd(t, app, "page", "Analysis")
	require.NoError(t, err)
	assert.Equal(t, domain.PageAnalysis, app.Tracker.State().CurrentPage)

	_, err = executeCmd(t, app, "page", "settings")
	require.Error(t, err)
	assert.Equal(t, domain.PageAnalysis, app.Tracker.State().CurrentPage)
}

// --- backup ---

func TestBackupCmd_ExportImportRollback(t *testing.T) {
	app := testAppWithDB(t, kinematics())

	exported, err := executeCmd(t, app, "backup", "export", "--stdout")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(exported), 0o600))

	_, err = executeCmd(t, app, "subject", "add", "Biology", "--short", "B")
	require.NoError(t, err)
	require.Len(t, app.Tracker.State().Subjects, 4)

	output, err := executeCmd(t, app, "backup", "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, service.ImportSuccessMessage)
	assert.Len(t, app.Tracker.State().Subjects, 3)

	output, err = executeCmd(t, app, "backup", "snapshots")
	require.NoError(t, err)
	assert.Contains(t, output, "pre-import")

	_, err = executeCmd(t, app, "backup", "rollback")
	require.NoError(t, err)
	assert.Len(t, app.Tracker.State().Subjects, 4)
}

func TestBackupCmd_ExportToDir(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()

	output, err := executeCmd(t, app, "backup", "export", "--dir", dir)
	require.NoError(t, err)

	want := filepath.Join(dir, "syllabus-tracker-backup-2026-10-15.json")
	assert.Contains(t, output, want)
	assert.FileExists(t, want)
}

func TestBackupCmd_ImportInvalidFile(t *testing.T) {
	app := testApp(t, kinematics())
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"subjects": "nope"}`), 0o600))

	_, err := executeCmd(t, app, "backup", "import", path)
	require.Error(t, err)
	assert.Equal(t, service.ImportFailureMessage, err.Error())
	assert.Len(t, app.Tracker.State().Subjects[0].Chapters, 1)
}

func TestBackupCmd_RollbackWithoutSnapshot(t *testing.T) {
	app := testAppWithDB(t)

	_, err := executeCmd(t, app, "backup", "rollback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to roll back")
}

// --- reminders ---

func TestRemindCmd_OnceDeliversDueReminders(t *testing.T) {
	app := testApp(t,
		kinematics(testutil.WithRevisionSchedule("2026-10-15", "08:00", true)),
		testutil.WithChapters("chemistry",
			testutil.NewTestChapter("chemistry", "Mole Concept", testutil.WithRevisionSchedule("2026-10-15", "20:00", true)),
		),
	)
	notifier := app.Notifier.(*recordingNotifier)

	output, err := executeCmd(t, app, "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, output, "1 reminder delivered")

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].Body, "Kinematics")
}

func TestRemindCmd_OnceWithRemindersDisabled(t *testing.T) {
	app := testApp(t, kinematics(testutil.WithRevisionSchedule("2026-10-15", "", true)))
	app.Notifier = reminder.NewTerminalNotifier(new(bytes.Buffer), false)

	output, err := executeCmd(t, app, "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, output, "Reminders are disabled.")
}
