package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
	"github.com/alexanderramin/syllabus/internal/testentry"
)

// syllabusHuhTheme styles huh forms with the active formatter palette.
func syllabusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirm asks a yes/no question when interactive. Non-interactive callers
// must pass --yes.
func confirm(app *App, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.Interactive {
		return false, fmt.Errorf("%s pass --yes to confirm", title)
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(syllabusHuhTheme()).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if err := schedule.ValidateDay(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// onboardingForm collects the four profile fields, one per page.
func onboardingForm(p *domain.UserProfile) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What's your name?").Placeholder("Enter your name").
				Value(&p.Name).Validate(validateRequired("name")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Which exam are you preparing for?").Placeholder("e.g., JEE Advanced, NEET, CAT").
				Value(&p.Exam).Validate(validateRequired("exam")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Which year will you appear for the exam?").Placeholder("e.g., 2026").
				Value(&p.Year).Validate(validateRequired("year")),
		),
		huh.NewGroup(
			huh.NewInput().Title("When is your exam date?").Placeholder("YYYY-MM-DD").
				Value(&p.ExamDate).Validate(validateDate),
		),
	).WithTheme(syllabusHuhTheme())
}

// testFields is the text form of a testentry.Form, bound to huh inputs.
type testFields struct {
	Name          string
	DateAttempted string
	Questions     string
	Correct       string
	Incorrect     string
	Unattempted   string
	TotalTime     string
	Subjects      string
}

func fieldsFromForm(f testentry.Form) testFields {
	tf := testFields{
		Name:          f.Name,
		DateAttempted: f.DateAttempted,
		TotalTime:     f.TotalTime,
	}
	if f.TotalQuestions != 0 || f.Correct != 0 || f.Incorrect != 0 || f.Unattempted != 0 {
		tf.Questions = strconv.Itoa(f.TotalQuestions)
		tf.Correct = strconv.Itoa(f.Correct)
		tf.Incorrect = strconv.Itoa(f.Incorrect)
		tf.Unattempted = strconv.Itoa(f.Unattempted)
	}
	lines := make([]string, 0, len(f.Subjects))
	for _, r := range f.Subjects {
		lines = append(lines, formatSubjectRow(r))
	}
	tf.Subjects = strings.Join(lines, "\n")
	return tf
}

// toForm parses the numeric fields. Blank numbers count as zero.
func (tf testFields) toForm() (testentry.Form, error) {
	var errs []error
	num := func(label, s string) int {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a whole number", label))
		}
		return n
	}
	f := testentry.Form{
		Name:           tf.Name,
		DateAttempted:  strings.TrimSpace(tf.DateAttempted),
		TotalQuestions: num("Total questions", tf.Questions),
		Correct:        num("Correct", tf.Correct),
		Incorrect:      num("Incorrect", tf.Incorrect),
		Unattempted:    num("Unattempted", tf.Unattempted),
		TotalTime:      tf.TotalTime,
	}
	for _, line := range strings.Split(tf.Subjects, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseSubjectRow(line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f.Subjects = append(f.Subjects, row)
	}
	return f, errors.Join(errs...)
}

// parseSubjectRow reads "Name:correct:incorrect:unattempted". The name may
// itself contain colons.
func parseSubjectRow(s string) (testentry.SubjectRow, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 4 {
		return testentry.SubjectRow{}, fmt.Errorf("subject row %q must look like Name:correct:incorrect:unattempted", s)
	}
	n := len(parts)
	var nums [3]int
	for i, p := range parts[n-3:] {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return testentry.SubjectRow{}, fmt.Errorf("subject row %q: %q is not a whole number", s, p)
		}
		nums[i] = v
	}
	return testentry.SubjectRow{
		Name:        strings.TrimSpace(strings.Join(parts[:n-3], ":")),
		Correct:     nums[0],
		Incorrect:   nums[1],
		Unattempted: nums[2],
	}, nil
}

func formatSubjectRow(r testentry.SubjectRow) string {
	return fmt.Sprintf("%s:%d:%d:%d", r.Name, r.Correct, r.Incorrect, r.Unattempted)
}

// testWizardStep builds the huh form for the wizard's current step, with the
// previous attempt's violations shown on top.
func testWizardStep(w *testentry.Wizard, tf *testFields) *huh.Form {
	var fields []huh.Field
	title := fmt.Sprintf("Step %d of %d: %s", w.Step, testentry.StepCount, testentry.StepTitle(w.Step))
	if len(w.Errors) > 0 {
		fields = append(fields, huh.NewNote().Title(title).Description(formatter.StyleRed.Render("• "+strings.Join(w.Errors, "\n• "))))
	} else {
		fields = append(fields, huh.NewNote().Title(title))
	}

	switch w.Step {
	case testentry.StepDetails:
		fields = append(fields,
			huh.NewInput().Title("Test name").Placeholder("e.g., JEE Main Mock 3").Value(&tf.Name),
			huh.NewInput().Title("Date attempted").Placeholder("YYYY-MM-DD").Value(&tf.DateAttempted),
			huh.NewInput().Title("Total questions").Placeholder("e.g., 75").Value(&tf.Questions),
		)
	case testentry.StepBreakdown:
		fields = append(fields,
			huh.NewInput().Title("Correct").Value(&tf.Correct),
			huh.NewInput().Title("Incorrect").Value(&tf.Incorrect),
			huh.NewInput().Title("Unattempted").Value(&tf.Unattempted),
		)
	case testentry.StepSubjects:
		fields = append(fields,
			huh.NewText().Title("Subjects").
				Description("One per line: Name:correct:incorrect:unattempted").
				Placeholder("Physics:20:3:2").
				Value(&tf.Subjects),
		)
	case testentry.StepTime:
		fields = append(fields,
			huh.NewInput().Title("Total time taken").Placeholder("e.g., 3h or 2h 45m").Value(&tf.TotalTime),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(syllabusHuhTheme())
}

// runTestWizard walks the four steps until the record validates or the user
// aborts.
func runTestWizard(w *testentry.Wizard, createdAt string) (domain.Test, error) {
	tf := fieldsFromForm(w.Form)
	for {
		if err := testWizardStep(w, &tf).Run(); err != nil {
			return domain.Test{}, err
		}
		f, err := tf.toForm()
		w.Form = f
		if err != nil {
			w.Errors = strings.Split(err.Error(), "\n")
			continue
		}
		if !w.IsLast() {
			w.Next()
			continue
		}
		t, err := w.Save(createdAt)
		if err == nil {
			return t, nil
		}
		// Jump back to the first failing step.
		for step := testentry.StepDetails; step <= testentry.StepCount; step++ {
			if errs := testentry.ValidateStep(w.Form, step); len(errs) > 0 {
				w.Step, w.Errors = step, errs
				break
			}
		}
	}
}
