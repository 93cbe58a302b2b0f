package testentry

import (
	"errors"
	"slices"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// ErrInvalidForm is returned by Save when violations remain.
var ErrInvalidForm = errors.New("test entry has validation errors")

// Wizard drives the four-step entry flow. Errors holds the violations from
// the most recent Next or Save.
type Wizard struct {
	Step   int
	Form   Form
	Errors []string
}

// NewWizard starts at the first step. Pass FromTest(...) to edit a record.
func NewWizard(f Form) *Wizard {
	return &Wizard{Step: StepDetails, Form: f}
}

// Next validates the current step and advances only when it passes.
func (w *Wizard) Next() bool {
	w.Errors = ValidateStep(w.Form, w.Step)
	if len(w.Errors) > 0 {
		return false
	}
	if w.Step < StepCount {
		w.Step++
	}
	return true
}

// Back clears errors and returns to the previous step.
func (w *Wizard) Back() {
	w.Errors = nil
	if w.Step > StepDetails {
		w.Step--
	}
}

// AddSubject appends an empty subject row.
func (w *Wizard) AddSubject() {
	w.Form.Subjects = append(w.Form.Subjects, SubjectRow{})
}

// RemoveSubject drops the row at i; out-of-range indexes are ignored.
func (w *Wizard) RemoveSubject(i int) {
	if i < 0 || i >= len(w.Form.Subjects) {
		return
	}
	w.Form.Subjects = slices.Delete(w.Form.Subjects, i, i+1)
}

// IsLast reports whether the wizard is on the final step.
func (w *Wizard) IsLast() bool {
	return w.Step == StepCount
}

// Save validates every stage and returns the finished record.
func (w *Wizard) Save(createdAt string) (domain.Test, error) {
	w.Errors = Validate(w.Form)
	if len(w.Errors) > 0 {
		return domain.Test{}, errors.Join(ErrInvalidForm, errors.New(strings.Join(w.Errors, "; ")))
	}
	return Build(w.Form, createdAt), nil
}
