package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

const statusProgressBarWidth = 20

// FormatStatus renders the dashboard: greeting, countdown, quote and progress.
func FormatStatus(s domain.AppState, now time.Time) string {
	var b strings.Builder

	if s.UserProfile != nil {
		b.WriteString(Bold(schedule.DynamicGreeting(s.UserProfile.Name, now)) + "\n")
	}
	b.WriteString(Dim(s.CurrentDate) + "\n\n")

	b.WriteString(FormatCountdown(s.TargetDeadline, now) + "\n\n")
	b.WriteString(StylePurple.Render("“"+schedule.DailyQuote(now)+"”") + "\n\n")

	b.WriteString(fmt.Sprintf("%-12s %s\n", "Overall", RenderProgress(progress.OverallProgress(s.Subjects), statusProgressBarWidth)))
	for _, st := range progress.DetailedStats(s.Subjects) {
		label := st.Name
		if st.SubjectID == s.ActiveSubject {
			label = "▸ " + label
		}
		b.WriteString(fmt.Sprintf("%-12s %s  %s\n",
			truncate(label, 12),
			RenderProgress(st.Progress, statusProgressBarWidth),
			Dim(fmt.Sprintf("%d/%d chapters", st.CompletedChapters, st.TotalChapters))))
	}

	return RenderBox("Status", strings.TrimRight(b.String(), "\n"))
}

// FormatCountdown renders "N days left until 15th October, 2026".
func FormatCountdown(deadline string, now time.Time) string {
	days := schedule.DaysUntil(deadline, now)
	target := deadline
	if t, err := schedule.ParseDay(deadline, now.Location()); err == nil {
		target = schedule.FormatLongOrdinalDate(t)
	}
	style := StyleGreen
	switch {
	case days <= 30:
		style = StyleRed
	case days <= 90:
		style = StyleYellow
	}
	return style.Render(Plural(days, "day")+" left") + Dim(" until "+target)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
