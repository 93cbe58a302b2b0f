package state

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// Env supplies the reducer's only outside inputs. Zero values fall back to
// the wall clock and UUID ids.
type Env struct {
	Now time.Time
	IDs IDGenerator
}

func (e Env) now() time.Time {
	if e.Now.IsZero() {
		return time.Now()
	}
	return e.Now
}

func (e Env) newID(prefix string) string {
	if e.IDs == nil {
		return UUIDGenerator{}.NewID(prefix)
	}
	return e.IDs.NewID(prefix)
}

// Reduce applies a to s and returns the next state. It never mutates s:
// slices on the path to the touched entity are cloned and everything else is
// shared. Every action is total; unknown targets and blank names leave the
// state value-identical.
func Reduce(s domain.AppState, a Action, env Env) domain.AppState {
	return ReduceIndexed(s, NewIndex(s.Subjects), a, env)
}

// ReduceIndexed is Reduce with a chapter index already built for s.
func ReduceIndexed(s domain.AppState, idx Index, a Action, env Env) domain.AppState {
	switch a := a.(type) {
	case SetActiveSubject:
		s.ActiveSubject = a.SubjectID

	case ToggleSidebar:
		s.SidebarOpen = !s.SidebarOpen

	case SetCurrentPage:
		if domain.ValidPage(a.Page) {
			s.CurrentPage = a.Page
			s.SidebarOpen = false
		}

	case AddChapter:
		return addChapter(s, a, env)

	case RenameChapter:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return s
		}
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			ch.Name = name
		})

	case DeleteChapter:
		pos, ok := idx.Lookup(a.ChapterID)
		if !ok {
			return s
		}
		subjects := slices.Clone(s.Subjects)
		subj := subjects[pos.Subject]
		subj.Chapters = slices.Delete(slices.Clone(subj.Chapters), pos.Chapter, pos.Chapter+1)
		subjects[pos.Subject] = subj
		s.Subjects = subjects

	case SetChapterDifficulty:
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			ch.Difficulty = domain.NormalizeDifficulty(a.Difficulty)
		})

	case SetChapterTargetDate:
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			ch.TargetDate = a.TargetDate
		})

	case AddActivity:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return s
		}
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			activities := make([]domain.Activity, len(ch.Activities), len(ch.Activities)+1)
			copy(activities, ch.Activities)
			ch.Activities = append(activities, domain.Activity{
				ID:   env.newID(PrefixActivity),
				Name: name,
			})
		})

	case ToggleActivity:
		return updateActivity(s, idx, a.ChapterID, a.ActivityID, func(act *domain.Activity) {
			act.Completed = !act.Completed
		})

	case ToggleAllActivities:
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			activities := slices.Clone(ch.Activities)
			for i := range activities {
				activities[i].Completed = a.Completed
			}
			ch.Activities = activities
		})

	case RenameActivity:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return s
		}
		return updateActivity(s, idx, a.ChapterID, a.ActivityID, func(act *domain.Activity) {
			act.Name = name
		})

	case DeleteActivity:
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			i := activityIndex(ch.Activities, a.ActivityID)
			if i < 0 {
				return
			}
			ch.Activities = slices.Delete(slices.Clone(ch.Activities), i, i+1)
		})

	case AddSubject:
		if domain.ValidateSubjectInput(a.Name, a.ShortName) != nil {
			return s
		}
		subjects := make([]domain.Subject, len(s.Subjects), len(s.Subjects)+1)
		copy(subjects, s.Subjects)
		s.Subjects = append(subjects, domain.Subject{
			ID:        env.newID(PrefixSubject),
			Name:      strings.TrimSpace(a.Name),
			ShortName: strings.TrimSpace(a.ShortName),
			Chapters:  []domain.Chapter{},
		})

	case DeleteSubject:
		return deleteSubject(s, a.SubjectID)

	case SetTargetDeadline:
		s.TargetDeadline = a.Date

	case SetUserProfile:
		profile := a.Profile
		s.UserProfile = &profile
		s.TargetDeadline = profile.ExamDate

	case MarkChapterRevised:
		now := env.now()
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			ch.LastRevisedDate = now.Format(time.RFC3339)
			ch.RevisionCount++
			history := make([]domain.RevisionEntry, len(ch.RevisionHistory), len(ch.RevisionHistory)+1)
			copy(history, ch.RevisionHistory)
			ch.RevisionHistory = append(history, domain.RevisionEntry{
				ID:   env.newID(PrefixRevision),
				Date: now.Format(schedule.DayLayout),
				Time: now.Format(schedule.ClockLayout),
			})
		})

	case UndoChapterRevision:
		loc := env.now().Location()
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			undoRevision(ch, loc)
		})

	case ScheduleRevision:
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			ch.ScheduledRevisionDate = a.Date
			ch.ScheduledRevisionTime = a.Time
			ch.NotificationEnabled = a.EnableNotification
		})

	case CancelRevisionSchedule:
		return updateChapter(s, idx, a.ChapterID, func(ch *domain.Chapter) {
			ch.ScheduledRevisionDate = ""
			ch.ScheduledRevisionTime = ""
			ch.NotificationEnabled = false
		})

	case AddTest:
		t := cloneTest(a.Test)
		t.ID = env.newID(PrefixTest)
		if t.CreatedAt == "" {
			t.CreatedAt = env.now().Format(time.RFC3339)
		}
		tests := make([]domain.Test, len(s.Tests), len(s.Tests)+1)
		copy(tests, s.Tests)
		s.Tests = append(tests, t)

	case EditTest:
		i := testIndex(s.Tests, a.TestID)
		if i < 0 {
			return s
		}
		old := s.Tests[i]
		t := cloneTest(a.Test)
		if t.ID == "" {
			t.ID = old.ID
		}
		if t.CreatedAt == "" {
			t.CreatedAt = old.CreatedAt
		}
		tests := slices.Clone(s.Tests)
		tests[i] = t
		s.Tests = tests

	case DeleteTest:
		i := testIndex(s.Tests, a.TestID)
		if i < 0 {
			return s
		}
		s.Tests = slices.Delete(slices.Clone(s.Tests), i, i+1)

	case ImportData:
		dark := s.IsDarkMode
		s = domain.Normalize(a.State)
		s.IsDarkMode = dark
		s.CurrentDate = schedule.CurrentDate(env.now())
		s.CurrentPage = domain.PageChecklist
		s.SidebarOpen = false
		s.Loading = false

	case LoadFromStorage:
		s = domain.Normalize(a.State)
		s.CurrentDate = schedule.CurrentDate(env.now())
		s.Loading = false

	case UpdateCurrentDate:
		s.CurrentDate = schedule.CurrentDate(env.now())

	case ToggleDarkMode:
		s.IsDarkMode = !s.IsDarkMode

	case SetLoading:
		s.Loading = a.Loading
	}
	return s
}

func addChapter(s domain.AppState, a AddChapter, env Env) domain.AppState {
	name := strings.TrimSpace(a.Name)
	si := slices.IndexFunc(s.Subjects, func(subj domain.Subject) bool { return subj.ID == a.SubjectID })
	if si < 0 || name == "" {
		return s
	}
	subjects := slices.Clone(s.Subjects)
	subj := subjects[si]
	chapters := make([]domain.Chapter, len(subj.Chapters), len(subj.Chapters)+1)
	copy(chapters, subj.Chapters)
	subj.Chapters = append(chapters, domain.Chapter{
		ID:         env.newID(PrefixChapter),
		Name:       name,
		Subject:    subj.ID,
		Activities: []domain.Activity{},
		Difficulty: domain.NormalizeDifficulty(a.Difficulty),
	})
	subjects[si] = subj
	s.Subjects = subjects
	return s
}

func deleteSubject(s domain.AppState, id string) domain.AppState {
	si := slices.IndexFunc(s.Subjects, func(subj domain.Subject) bool { return subj.ID == id })
	if si < 0 {
		return s
	}
	s.Subjects = slices.Delete(slices.Clone(s.Subjects), si, si+1)
	if s.ActiveSubject == id {
		if len(s.Subjects) > 0 {
			s.ActiveSubject = s.Subjects[0].ID
		} else {
			s.ActiveSubject = domain.FallbackSubjectID
		}
	}
	return s
}

// updateChapter clones the path root -> subject -> chapter and hands fn a
// copy of the chapter. fn must replace, not modify, nested slices.
func updateChapter(s domain.AppState, idx Index, chapterID string, fn func(*domain.Chapter)) domain.AppState {
	pos, ok := idx.Lookup(chapterID)
	if !ok {
		return s
	}
	subjects := slices.Clone(s.Subjects)
	subj := subjects[pos.Subject]
	subj.Chapters = slices.Clone(subj.Chapters)
	ch := subj.Chapters[pos.Chapter]
	fn(&ch)
	subj.Chapters[pos.Chapter] = ch
	subjects[pos.Subject] = subj
	s.Subjects = subjects
	return s
}

func updateActivity(s domain.AppState, idx Index, chapterID, activityID string, fn func(*domain.Activity)) domain.AppState {
	return updateChapter(s, idx, chapterID, func(ch *domain.Chapter) {
		i := activityIndex(ch.Activities, activityID)
		if i < 0 {
			return
		}
		activities := slices.Clone(ch.Activities)
		fn(&activities[i])
		ch.Activities = activities
	})
}

// undoRevision inverts the most recent MarkChapterRevised. LastRevisedDate
// falls back to the previous history entry, read in loc.
func undoRevision(ch *domain.Chapter, loc *time.Location) {
	if ch.RevisionCount == 0 && len(ch.RevisionHistory) == 0 {
		return
	}
	ch.RevisionCount = max(0, ch.RevisionCount-1)
	if n := len(ch.RevisionHistory); n > 0 {
		ch.RevisionHistory = slices.Clone(ch.RevisionHistory[:n-1])
	}
	n := len(ch.RevisionHistory)
	if n == 0 {
		ch.LastRevisedDate = ""
		return
	}
	last := ch.RevisionHistory[n-1]
	t, err := time.ParseInLocation(schedule.DayLayout+" "+schedule.ClockLayout, last.Date+" "+last.Time, loc)
	if err != nil {
		ch.LastRevisedDate = last.Date
		return
	}
	ch.LastRevisedDate = t.Format(time.RFC3339)
}

func activityIndex(activities []domain.Activity, id string) int {
	return slices.IndexFunc(activities, func(act domain.Activity) bool { return act.ID == id })
}

func testIndex(tests []domain.Test, id string) int {
	return slices.IndexFunc(tests, func(t domain.Test) bool {
		return t.ID == id || (t.ID == "" && t.CreatedAt == id)
	})
}

func cloneTest(t domain.Test) domain.Test {
	t.Subjects = slices.Clone(t.Subjects)
	return t
}
