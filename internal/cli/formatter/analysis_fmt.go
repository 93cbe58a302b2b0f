package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
)

// FormatAnalysis renders the per-subject breakdown table.
func FormatAnalysis(subjects []domain.Subject) string {
	var b strings.Builder
	headers := []string{"SUBJECT", "CHAPTERS", "ACTIVITIES", "PROGRESS"}
	stats := progress.DetailedStats(subjects)
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			st.Name,
			fmt.Sprintf("%d/%d", st.CompletedChapters, st.TotalChapters),
			fmt.Sprintf("%d/%d", st.CompletedActivities, st.TotalActivities),
			RenderProgress(st.Progress, chapterProgressBarWidth),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Overall  %s\n", RenderProgress(progress.OverallProgress(subjects), statusProgressBarWidth)))
	return b.String()
}

// FormatPriority renders chapters filtered by difficulty.
func FormatPriority(subject domain.Subject, difficulty domain.Difficulty, rows []progress.ChapterRow) string {
	title := fmt.Sprintf("%s · %s", subject.Name, difficulty)
	if len(rows) == 0 {
		return Header(title) + "\n" + Dim("No chapters at this difficulty.") + "\n"
	}
	headers := []string{"ID", "CHAPTER", "DONE", "PROGRESS"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			TruncID(r.Chapter.ID),
			chapterName(r.Chapter),
			fmt.Sprintf("%d/%d", r.Chapter.CompletedCount(), len(r.Chapter.Activities)),
			RenderProgress(r.Progress, chapterProgressBarWidth),
		})
	}
	return Header(title) + "\n" + RenderTable(headers, out)
}
