package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/syllabus/internal/domain"
)

var fixtureCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-fx%d", prefix, fixtureCounter.Add(1))
}

// Chapter options
type ChapterOption func(*domain.Chapter)

// WithActivities adds activities with the given names. The first done of
// them are marked completed.
func WithActivities(done int, names ...string) ChapterOption {
	return func(c *domain.Chapter) {
		for i, name := range names {
			c.Activities = append(c.Activities, domain.Activity{
				ID:        nextID("activity"),
				Name:      name,
				Completed: i < done,
			})
		}
	}
}

func WithDifficulty(d domain.Difficulty) ChapterOption {
	return func(c *domain.Chapter) {
		c.Difficulty = d
	}
}

func WithChapterID(id string) ChapterOption {
	return func(c *domain.Chapter) {
		c.ID = id
	}
}

func WithLastRevised(rfc3339 string, count int) ChapterOption {
	return func(c *domain.Chapter) {
		c.LastRevisedDate = rfc3339
		c.RevisionCount = count
	}
}

func WithRevisionSchedule(date, clock string, notify bool) ChapterOption {
	return func(c *domain.Chapter) {
		c.ScheduledRevisionDate = date
		c.ScheduledRevisionTime = clock
		c.NotificationEnabled = notify
	}
}

func NewTestChapter(subjectID, name string, opts ...ChapterOption) domain.Chapter {
	c := domain.Chapter{
		ID:         nextID("chapter"),
		Name:       name,
		Subject:    subjectID,
		Activities: []domain.Activity{},
		Difficulty: domain.DifficultyNone,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Test record options
type TestOption func(*domain.Test)

func WithSubjectRow(name string, correct, incorrect, unattempted int) TestOption {
	return func(t *domain.Test) {
		t.Subjects = append(t.Subjects, domain.TestSubject{
			Name:        name,
			Correct:     correct,
			Incorrect:   incorrect,
			Unattempted: unattempted,
			Marks:       domain.Marks(correct, incorrect),
		})
	}
}

func WithTestID(id string) TestOption {
	return func(t *domain.Test) {
		t.ID = id
	}
}

// NewTestRecord builds a balanced test record with marks computed.
func NewTestRecord(name string, correct, incorrect, unattempted int, opts ...TestOption) domain.Test {
	t := domain.Test{
		ID:             nextID("test"),
		Name:           name,
		DateAttempted:  "2026-10-01",
		TotalQuestions: correct + incorrect + unattempted,
		Correct:        correct,
		Incorrect:      incorrect,
		Unattempted:    unattempted,
		TotalTime:      "3h",
		TotalMarks:     domain.Marks(correct, incorrect),
		Subjects:       []domain.TestSubject{},
		CreatedAt:      "2026-10-01T12:00:00Z",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// State options
type StateOption func(*domain.AppState)

// WithChapters appends chapters to the subject with the given id.
func WithChapters(subjectID string, chapters ...domain.Chapter) StateOption {
	return func(s *domain.AppState) {
		subj := s.FindSubject(subjectID)
		if subj == nil {
			panic("testutil: unknown subject " + subjectID)
		}
		subj.Chapters = append(subj.Chapters, chapters...)
	}
}

func WithTests(tests ...domain.Test) StateOption {
	return func(s *domain.AppState) {
		s.Tests = append(s.Tests, tests...)
	}
}

func WithProfile(p domain.UserProfile) StateOption {
	return func(s *domain.AppState) {
		s.UserProfile = &p
		s.TargetDeadline = p.ExamDate
	}
}

// NewTestState starts from the seed state and applies opts.
func NewTestState(opts ...StateOption) domain.AppState {
	s := domain.SeedState("15th Oct, 26")
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
