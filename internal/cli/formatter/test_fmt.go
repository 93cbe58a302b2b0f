package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
)

// FormatTestList renders recorded tests, newest last.
func FormatTestList(tests []domain.Test) string {
	if len(tests) == 0 {
		return Dim("No tests recorded yet. Add one with `test add`.") + "\n"
	}
	headers := []string{"ID", "TEST", "DATE", "SCORE", "C/I/U", "TIME"}
	rows := make([][]string, 0, len(tests))
	for _, t := range tests {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Name,
			t.DateAttempted,
			scoreCell(t),
			fmt.Sprintf("%d/%d/%d", t.Correct, t.Incorrect, t.Unattempted),
			t.TotalTime,
		})
	}
	return RenderTable(headers, rows)
}

// FormatTestDetail renders one test with its subject breakdown.
func FormatTestDetail(t domain.Test) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(t.Name), Dim(t.DateAttempted))
	fmt.Fprintf(&b, "Score %s  in %s\n", scoreCell(t), t.TotalTime)
	fmt.Fprintf(&b, "%d questions: %s correct, %s incorrect, %s unattempted\n\n",
		t.TotalQuestions,
		StyleGreen.Render(fmt.Sprint(t.Correct)),
		StyleRed.Render(fmt.Sprint(t.Incorrect)),
		Dim(fmt.Sprint(t.Unattempted)))

	headers := []string{"SUBJECT", "CORRECT", "INCORRECT", "UNATTEMPTED", "MARKS"}
	rows := make([][]string, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprint(s.Correct),
			fmt.Sprint(s.Incorrect),
			fmt.Sprint(s.Unattempted),
			fmt.Sprint(s.Marks),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("Test", strings.TrimRight(b.String(), "\n"))
}

// FormatTestAnalysis renders aggregate statistics. A nil analysis means no
// tests exist.
func FormatTestAnalysis(a *progress.TestAnalysis) string {
	if a == nil {
		return Dim("No tests recorded yet.") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Tests taken     %d\n", a.TotalTests)
	fmt.Fprintf(&b, "Average marks   %.1f\n", a.AverageMarks)
	fmt.Fprintf(&b, "Best score      %s\n", StyleGreen.Render(fmt.Sprint(a.BestScore)))
	fmt.Fprintf(&b, "Worst score     %s\n", StyleRed.Render(fmt.Sprint(a.WorstScore)))
	fmt.Fprintf(&b, "Accuracy        %.1f%%\n\n", a.Accuracy)

	headers := []string{"SUBJECT", "CORRECT", "INCORRECT", "QUESTIONS", "ACCURACY"}
	rows := make([][]string, 0, len(a.Subjects))
	for _, s := range a.Subjects {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprint(s.Correct),
			fmt.Sprint(s.Incorrect),
			fmt.Sprint(s.Total),
			accuracyCell(s.Accuracy()),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func scoreCell(t domain.Test) string {
	text := fmt.Sprintf("%d/%d", t.TotalMarks, t.MaxMarks())
	if t.MaxMarks() == 0 {
		return text
	}
	pct := t.TotalMarks * 100 / t.MaxMarks()
	switch {
	case pct >= 67:
		return StyleGreen.Render(text)
	case pct >= 33:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

func accuracyCell(acc float64) string {
	text := fmt.Sprintf("%.1f%%", acc)
	switch {
	case acc >= 75:
		return StyleGreen.Render(text)
	case acc >= 50:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
