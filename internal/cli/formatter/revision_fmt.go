package formatter

import (
	"strconv"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// RevisionRow is one chapter on the revision page.
type RevisionRow struct {
	Subject domain.Subject
	Chapter domain.Chapter
}

// FormatRevisionList renders chapters with their urgency-coloured status.
func FormatRevisionList(rows []RevisionRow, now time.Time) string {
	if len(rows) == 0 {
		return Dim("No chapters match.") + "\n"
	}
	headers := []string{"ID", "CHAPTER", "SUBJECT", "COUNT", "LAST REVISED", "SCHEDULE", "STATUS"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		ch := r.Chapter
		sched := Dim("--")
		if status := schedule.ScheduleStatus(ch.ScheduledRevisionDate, now); status != "" {
			sched = scheduleLine(status, ch)
		}
		out = append(out, []string{
			TruncID(ch.ID),
			ch.Name,
			r.Subject.ShortName,
			strconv.Itoa(ch.RevisionCount),
			Dim(schedule.TimeSinceRevision(ch.LastRevisedDate, now)),
			sched,
			UrgencyIndicator(schedule.RevisionUrgency(ch, now)),
		})
	}
	return RenderTable(headers, out)
}
