// Package testentry validates practice-test submissions before they reach
// the reducer. Validation runs in four stages matching the entry wizard.
package testentry

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// Stages of the entry wizard.
const (
	StepDetails   = 1
	StepBreakdown = 2
	StepSubjects  = 3
	StepTime      = 4
	StepCount     = 4
)

// StepTitle returns the heading shown for a wizard step.
func StepTitle(step int) string {
	switch step {
	case StepDetails:
		return "Test details"
	case StepBreakdown:
		return "Question breakdown"
	case StepSubjects:
		return "Subject-wise breakdown"
	case StepTime:
		return "Time taken"
	default:
		return ""
	}
}

type SubjectRow struct {
	Name        string
	Correct     int
	Incorrect   int
	Unattempted int
}

func (r SubjectRow) total() int {
	return r.Correct + r.Incorrect + r.Unattempted
}

// Form is the in-progress test entry.
type Form struct {
	Name           string
	DateAttempted  string
	TotalQuestions int
	Correct        int
	Incorrect      int
	Unattempted    int
	TotalTime      string
	Subjects       []SubjectRow
}

// FromTest pre-fills a form from an existing record.
func FromTest(t domain.Test) Form {
	f := Form{
		Name:           t.Name,
		DateAttempted:  t.DateAttempted,
		TotalQuestions: t.TotalQuestions,
		Correct:        t.Correct,
		Incorrect:      t.Incorrect,
		Unattempted:    t.Unattempted,
		TotalTime:      t.TotalTime,
	}
	for _, s := range t.Subjects {
		f.Subjects = append(f.Subjects, SubjectRow{
			Name:        s.Name,
			Correct:     s.Correct,
			Incorrect:   s.Incorrect,
			Unattempted: s.Unattempted,
		})
	}
	return f
}

// ValidateStep returns the violations for one stage. An empty result means
// the stage passes.
func ValidateStep(f Form, step int) []string {
	var errs []string
	switch step {
	case StepDetails:
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, "Test name is required")
		}
		if strings.TrimSpace(f.DateAttempted) == "" {
			errs = append(errs, "Date attempted is required")
		} else if schedule.ValidateDay(f.DateAttempted) != nil {
			errs = append(errs, "Date attempted must be a YYYY-MM-DD date")
		}
		if f.TotalQuestions <= 0 {
			errs = append(errs, "Total questions must be greater than 0")
		}

	case StepBreakdown:
		total := f.Correct + f.Incorrect + f.Unattempted
		if total != f.TotalQuestions {
			errs = append(errs, fmt.Sprintf("Total questions breakdown (%d) must equal total questions (%d)", total, f.TotalQuestions))
		}
		if f.Correct == 0 && f.Incorrect == 0 && f.Unattempted == 0 && f.TotalQuestions > 0 {
			errs = append(errs, "Cannot have all values as 0 when total questions is greater than 0")
		}
		if f.Correct < 0 || f.Incorrect < 0 || f.Unattempted < 0 {
			errs = append(errs, "Question counts cannot be negative")
		}

	case StepSubjects:
		var correct, incorrect, unattempted int
		for i, s := range f.Subjects {
			if strings.TrimSpace(s.Name) == "" {
				errs = append(errs, fmt.Sprintf("Subject %d name is required", i+1))
			}
			if s.total() > f.TotalQuestions {
				errs = append(errs, fmt.Sprintf("Subject %q total questions (%d) cannot exceed test total (%d)", s.Name, s.total(), f.TotalQuestions))
			}
			if s.Correct < 0 || s.Incorrect < 0 || s.Unattempted < 0 {
				errs = append(errs, fmt.Sprintf("Subject %q cannot have negative values", s.Name))
			}
			correct += s.Correct
			incorrect += s.Incorrect
			unattempted += s.Unattempted
		}
		if len(f.Subjects) > 0 {
			if correct != f.Correct {
				errs = append(errs, fmt.Sprintf("Subject-wise correct questions (%d) must equal total correct (%d)", correct, f.Correct))
			}
			if incorrect != f.Incorrect {
				errs = append(errs, fmt.Sprintf("Subject-wise incorrect questions (%d) must equal total incorrect (%d)", incorrect, f.Incorrect))
			}
			if unattempted != f.Unattempted {
				errs = append(errs, fmt.Sprintf("Subject-wise unattempted questions (%d) must equal total unattempted (%d)", unattempted, f.Unattempted))
			}
		}

	case StepTime:
		if strings.TrimSpace(f.TotalTime) == "" {
			errs = append(errs, "Total time is required")
		}
	}
	return errs
}

// Validate runs every stage in order and returns all violations.
func Validate(f Form) []string {
	var errs []string
	for step := StepDetails; step <= StepCount; step++ {
		errs = append(errs, ValidateStep(f, step)...)
	}
	return errs
}

// Build converts a form to a test record, computing total and per-subject
// marks. It does not validate.
func Build(f Form, createdAt string) domain.Test {
	t := domain.Test{
		Name:           strings.TrimSpace(f.Name),
		DateAttempted:  f.DateAttempted,
		TotalQuestions: f.TotalQuestions,
		Correct:        f.Correct,
		Incorrect:      f.Incorrect,
		Unattempted:    f.Unattempted,
		TotalTime:      strings.TrimSpace(f.TotalTime),
		TotalMarks:     domain.Marks(f.Correct, f.Incorrect),
		Subjects:       make([]domain.TestSubject, 0, len(f.Subjects)),
		CreatedAt:      createdAt,
	}
	for _, s := range f.Subjects {
		t.Subjects = append(t.Subjects, domain.TestSubject{
			Name:        strings.TrimSpace(s.Name),
			Correct:     s.Correct,
			Incorrect:   s.Incorrect,
			Unattempted: s.Unattempted,
			Marks:       domain.Marks(s.Correct, s.Incorrect),
		})
	}
	return t
}
