// Package state holds the tracker's actions and the pure reducer that
// applies them to an AppState snapshot.
package state

import "github.com/alexanderramin/syllabus/internal/domain"

// Action is a state transition request. The set is closed: only types in
// this package implement it.
type Action interface {
	Type() string
	isAction()
}

type SetActiveSubject struct{ SubjectID string }

type ToggleSidebar struct{}

type SetCurrentPage struct{ Page domain.Page }

type AddChapter struct {
	SubjectID  string
	Name       string
	Difficulty domain.Difficulty
}

type RenameChapter struct {
	ChapterID string
	Name      string
}

type DeleteChapter struct{ ChapterID string }

type SetChapterDifficulty struct {
	ChapterID  string
	Difficulty domain.Difficulty
}

// SetChapterTargetDate sets the chapter's target date; an empty date clears it.
type SetChapterTargetDate struct {
	ChapterID  string
	TargetDate string
}

type AddActivity struct {
	ChapterID string
	Name      string
}

type ToggleActivity struct {
	ChapterID  string
	ActivityID string
}

type ToggleAllActivities struct {
	ChapterID string
	Completed bool
}

type RenameActivity struct {
	ChapterID  string
	ActivityID string
	Name       string
}

type DeleteActivity struct {
	ChapterID  string
	ActivityID string
}

type AddSubject struct {
	Name      string
	ShortName string
}

type DeleteSubject struct{ SubjectID string }

type SetTargetDeadline struct{ Date string }

type SetUserProfile struct{ Profile domain.UserProfile }

type MarkChapterRevised struct{ ChapterID string }

type UndoChapterRevision struct{ ChapterID string }

type ScheduleRevision struct {
	ChapterID          string
	Date               string
	Time               string
	EnableNotification bool
}

type CancelRevisionSchedule struct{ ChapterID string }

// AddTest appends a test record. Marks must already be computed.
type AddTest struct{ Test domain.Test }

// EditTest replaces the fields of the test matching TestID. Legacy records
// without an id are matched by their CreatedAt value.
type EditTest struct {
	TestID string
	Test   domain.Test
}

type DeleteTest struct{ TestID string }

// ImportData replaces the whole tree with a restored backup.
type ImportData struct{ State domain.AppState }

// LoadFromStorage replaces the whole tree with the persisted blob at startup.
type LoadFromStorage struct{ State domain.AppState }

type UpdateCurrentDate struct{}

type ToggleDarkMode struct{}

type SetLoading struct{ Loading bool }

func (SetActiveSubject) Type() string       { return "SET_ACTIVE_SUBJECT" }
func (ToggleSidebar) Type() string          { return "TOGGLE_SIDEBAR" }
func (SetCurrentPage) Type() string         { return "SET_CURRENT_PAGE" }
func (AddChapter) Type() string             { return "ADD_CHAPTER" }
func (RenameChapter) Type() string          { return "RENAME_CHAPTER" }
func (DeleteChapter) Type() string          { return "DELETE_CHAPTER" }
func (SetChapterDifficulty) Type() string   { return "SET_CHAPTER_DIFFICULTY" }
func (SetChapterTargetDate) Type() string   { return "SET_CHAPTER_TARGET_DATE" }
func (AddActivity) Type() string            { return "ADD_ACTIVITY" }
func (ToggleActivity) Type() string         { return "TOGGLE_ACTIVITY" }
func (ToggleAllActivities) Type() string    { return "TOGGLE_ALL_ACTIVITIES" }
func (RenameActivity) Type() string         { return "RENAME_ACTIVITY" }
func (DeleteActivity) Type() string         { return "DELETE_ACTIVITY" }
func (AddSubject) Type() string             { return "ADD_SUBJECT" }
func (DeleteSubject) Type() string          { return "DELETE_SUBJECT" }
func (SetTargetDeadline) Type() string      { return "SET_TARGET_DEADLINE" }
func (SetUserProfile) Type() string         { return "SET_USER_PROFILE" }
func (MarkChapterRevised) Type() string     { return "MARK_CHAPTER_REVISED" }
func (UndoChapterRevision) Type() string    { return "UNDO_CHAPTER_REVISION" }
func (ScheduleRevision) Type() string       { return "SCHEDULE_REVISION" }
func (CancelRevisionSchedule) Type() string { return "CANCEL_REVISION_SCHEDULE" }
func (AddTest) Type() string                { return "ADD_TEST" }
func (EditTest) Type() string               { return "EDIT_TEST" }
func (DeleteTest) Type() string             { return "DELETE_TEST" }
func (ImportData) Type() string             { return "IMPORT_DATA" }
func (LoadFromStorage) Type() string        { return "LOAD_FROM_STORAGE" }
func (UpdateCurrentDate) Type() string      { return "UPDATE_CURRENT_DATE" }
func (ToggleDarkMode) Type() string         { return "TOGGLE_DARK_MODE" }
func (SetLoading) Type() string             { return "SET_LOADING" }

func (SetActiveSubject) isAction()       {}
func (ToggleSidebar) isAction()          {}
func (SetCurrentPage) isAction()         {}
func (AddChapter) isAction()             {}
func (RenameChapter) isAction()          {}
func (DeleteChapter) isAction()          {}
func (SetChapterDifficulty) isAction()   {}
func (SetChapterTargetDate) isAction()   {}
func (AddActivity) isAction()            {}
func (ToggleActivity) isAction()         {}
func (ToggleAllActivities) isAction()    {}
func (RenameActivity) isAction()         {}
func (DeleteActivity) isAction()         {}
func (AddSubject) isAction()             {}
func (DeleteSubject) isAction()          {}
func (SetTargetDeadline) isAction()      {}
func (SetUserProfile) isAction()         {}
func (MarkChapterRevised) isAction()     {}
func (UndoChapterRevision) isAction()    {}
func (ScheduleRevision) isAction()       {}
func (CancelRevisionSchedule) isAction() {}
func (AddTest) isAction()                {}
func (EditTest) isAction()               {}
func (DeleteTest) isAction()             {}
func (ImportData) isAction()             {}
func (LoadFromStorage) isAction()        {}
func (UpdateCurrentDate) isAction()      {}
func (ToggleDarkMode) isAction()         {}
func (SetLoading) isAction()             {}

// Persists reports whether the state produced by a must be written to
// storage. Date refreshes and the startup load are exempt.
func Persists(a Action) bool {
	switch a.(type) {
	case UpdateCurrentDate, LoadFromStorage:
		return false
	default:
		return true
	}
}
