package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

const chapterProgressBarWidth = 10

// FormatSubjectTabs renders the subject switcher with the active one marked.
func FormatSubjectTabs(subjects []domain.Subject, active string) string {
	tabs := make([]string, 0, len(subjects))
	for _, s := range subjects {
		label := fmt.Sprintf("%s %s", s.ShortName, s.Name)
		if s.ID == active {
			tabs = append(tabs, StyleHeader.Render("["+label+"]"))
			continue
		}
		tabs = append(tabs, Dim(" "+label+" "))
	}
	return strings.Join(tabs, " ")
}

// FormatSubjectList renders every subject with its progress.
func FormatSubjectList(subjects []domain.Subject, active string) string {
	headers := []string{"ID", "SUBJECT", "SHORT", "CHAPTERS", "PROGRESS"}
	rows := make([][]string, 0, len(subjects))
	for _, st := range progress.DetailedStats(subjects) {
		name := st.Name
		if st.SubjectID == active {
			name = Bold(name + " *")
		}
		rows = append(rows, []string{
			TruncID(st.SubjectID),
			name,
			st.ShortName,
			fmt.Sprintf("%d/%d", st.CompletedChapters, st.TotalChapters),
			RenderProgress(st.Progress, chapterProgressBarWidth),
		})
	}
	return RenderTable(headers, rows)
}

// FormatChapterList renders a subject's chapters as a table.
func FormatChapterList(subject domain.Subject, now time.Time) string {
	if len(subject.Chapters) == 0 {
		return Dim(fmt.Sprintf("No chapters in %s yet. Add one with `chapter add`.", subject.Name)) + "\n"
	}
	headers := []string{"ID", "CHAPTER", "DIFFICULTY", "DONE", "PROGRESS", "TARGET"}
	rows := make([][]string, 0, len(subject.Chapters))
	for _, ch := range subject.Chapters {
		rows = append(rows, []string{
			TruncID(ch.ID),
			chapterName(ch),
			DifficultyBadge(ch.Difficulty),
			fmt.Sprintf("%d/%d", ch.CompletedCount(), len(ch.Activities)),
			RenderProgress(progress.ChapterProgress(ch.Activities), chapterProgressBarWidth),
			targetDate(ch.TargetDate, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatChapterDetail renders one chapter with its activities and revision
// state.
func FormatChapterDetail(subject domain.Subject, ch domain.Chapter, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(ch.Name), Dim(subject.Name))
	fmt.Fprintf(&b, "%s  %s\n", DifficultyBadge(ch.Difficulty), RenderProgress(progress.ChapterProgress(ch.Activities), chapterProgressBarWidth))
	if ch.TargetDate != "" {
		fmt.Fprintf(&b, "Target: %s\n", targetDate(ch.TargetDate, now))
	}
	b.WriteString("\n")
	if len(ch.Activities) == 0 {
		b.WriteString(Dim("No activities yet.") + "\n")
	}
	for _, a := range ch.Activities {
		fmt.Fprintf(&b, "%s %s  %s\n", Checkbox(a.Completed), a.Name, TruncID(a.ID))
	}
	b.WriteString("\n")
	b.WriteString(UrgencyIndicator(schedule.RevisionUrgency(ch, now)) + "  ")
	b.WriteString(Dim(schedule.TimeSinceRevision(ch.LastRevisedDate, now)) + "\n")
	if status := schedule.ScheduleStatus(ch.ScheduledRevisionDate, now); status != "" {
		b.WriteString(Dim(scheduleLine(status, ch)) + "\n")
	}
	return RenderBox("Chapter", strings.TrimRight(b.String(), "\n"))
}

func chapterName(ch domain.Chapter) string {
	if ch.IsComplete() {
		return StyleGreen.Render(ch.Name)
	}
	return ch.Name
}

func targetDate(date string, now time.Time) string {
	if date == "" {
		return Dim("--")
	}
	t, err := schedule.ParseDay(date, now.Location())
	if err != nil {
		return StyleFg.Render(date)
	}
	text := schedule.FormatOrdinalDate(t)
	switch days := schedule.DaysBetween(now, t); {
	case days < 0, days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

func scheduleLine(status string, ch domain.Chapter) string {
	if ch.ScheduledRevisionTime != "" {
		status += " at " + ch.ScheduledRevisionTime
	}
	if ch.NotificationEnabled {
		status += " (reminder on)"
	}
	return status
}
