// Package reminder scans scheduled revisions and delivers reminders through
// a Notifier. Scanning never modifies state.
package reminder

import (
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

const reminderTitle = "📚 Revision Reminder"

// Notification is one reminder. Tag identifies the chapter so a reminder is
// delivered at most once per day.
type Notification struct {
	Title string
	Body  string
	Tag   string
	Icon  string
}

// Tag returns the notification tag for a chapter.
func Tag(chapterID string) string {
	return "revision-" + chapterID
}

// Due returns reminders for chapters with notifications enabled whose
// revision is scheduled today. A chapter with a scheduled time becomes due
// once the clock reaches that time.
func Due(subjects []domain.Subject, now time.Time) []Notification {
	today := now.Format(schedule.DayLayout)
	minuteOfDay := now.Hour()*60 + now.Minute()

	var out []Notification
	for _, subj := range subjects {
		for _, ch := range subj.Chapters {
			if !ch.NotificationEnabled || ch.ScheduledRevisionDate != today {
				continue
			}
			if ch.ScheduledRevisionTime != "" {
				at, err := time.Parse(schedule.ClockLayout, ch.ScheduledRevisionTime)
				if err == nil && minuteOfDay < at.Hour()*60+at.Minute() {
					continue
				}
			}
			out = append(out, Notification{
				Title: reminderTitle,
				Body:  fmt.Sprintf("Hey! It's time to revise %q chapter today. Let's boost your preparation! 🚀", ch.Name),
				Tag:   Tag(ch.ID),
				Icon:  "📚",
			})
		}
	}
	return out
}
