package schedule

import (
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Urgency classifies a chapter's revision state for display.
type Urgency int

const (
	UrgencyNever Urgency = iota
	UrgencyRevisedToday
	UrgencyRecent
	UrgencyStale
	UrgencyLongOverdue
	UrgencyScheduled
	UrgencyDueSoon
	UrgencyDueToday
	UrgencyOverdue
)

func (u Urgency) String() string {
	switch u {
	case UrgencyNever:
		return "never revised"
	case UrgencyRevisedToday:
		return "revised today"
	case UrgencyRecent:
		return "recently revised"
	case UrgencyStale:
		return "needs revision"
	case UrgencyLongOverdue:
		return "long overdue"
	case UrgencyScheduled:
		return "scheduled"
	case UrgencyDueSoon:
		return "due soon"
	case UrgencyDueToday:
		return "due today"
	case UrgencyOverdue:
		return "overdue"
	default:
		return "unknown"
	}
}

// TimeSinceRevision describes how long ago a chapter was last revised.
func TimeSinceRevision(lastRevised string, now time.Time) string {
	if lastRevised == "" {
		return "Never revised"
	}
	revised, err := ParseDay(lastRevised, now.Location())
	if err != nil {
		return "Never revised"
	}
	days := elapsedDays(revised, now)
	when := FormatLongOrdinalDate(revised)
	switch days {
	case 0:
		return fmt.Sprintf("Revised today (%s)", when)
	case 1:
		return fmt.Sprintf("Revised yesterday (%s)", when)
	default:
		return fmt.Sprintf("Revised %d days ago (%s)", days, when)
	}
}

// ScheduleStatus describes a scheduled revision date relative to today.
// It returns "" when nothing is scheduled.
func ScheduleStatus(date string, now time.Time) string {
	if date == "" {
		return ""
	}
	scheduled, err := ParseDay(date, now.Location())
	if err != nil {
		return ""
	}
	days := DaysBetween(now, scheduled)
	switch {
	case days == 0:
		return "Scheduled for today"
	case days == 1:
		return "Scheduled for tomorrow"
	case days > 0:
		return fmt.Sprintf("Scheduled in %d days", days)
	default:
		return fmt.Sprintf("Overdue by %d days", -days)
	}
}

// RevisionUrgency classifies a chapter. A schedule takes precedence over the
// last revision date.
func RevisionUrgency(ch domain.Chapter, now time.Time) Urgency {
	if ch.ScheduledRevisionDate != "" {
		if scheduled, err := ParseDay(ch.ScheduledRevisionDate, now.Location()); err == nil {
			days := DaysBetween(now, scheduled)
			switch {
			case days < 0:
				return UrgencyOverdue
			case days == 0:
				return UrgencyDueToday
			case days <= 3:
				return UrgencyDueSoon
			default:
				return UrgencyScheduled
			}
		}
	}
	if ch.LastRevisedDate == "" {
		return UrgencyNever
	}
	revised, err := ParseDay(ch.LastRevisedDate, now.Location())
	if err != nil {
		return UrgencyNever
	}
	days := elapsedDays(revised, now)
	switch {
	case days == 0:
		return UrgencyRevisedToday
	case days <= 7:
		return UrgencyRecent
	case days <= 30:
		return UrgencyStale
	default:
		return UrgencyLongOverdue
	}
}

func elapsedDays(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
