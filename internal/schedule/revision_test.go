package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/syllabus/internal/domain"
)

func TestTimeSinceRevision(t *testing.T) {
	cases := []struct {
		name string
		last string
		want string
	}{
		{"never", "", "Never revised"},
		{"garbage", "not a date", "Never revised"},
		{"today", "2026-10-15T08:00:00Z", "Revised today (15th October, 2026)"},
		{"yesterday", "2026-10-14T09:00:00Z", "Revised yesterday (14th October, 2026)"},
		{"days ago", "2026-10-05T10:00:00Z", "Revised 10 days ago (5th October, 2026)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeSinceRevision(tc.last, testNow))
		})
	}
}

func TestScheduleStatus(t *testing.T) {
	assert.Equal(t, "", ScheduleStatus("", testNow))
	assert.Equal(t, "Scheduled for today", ScheduleStatus("2026-10-15", testNow))
	assert.Equal(t, "Scheduled for tomorrow", ScheduleStatus("2026-10-16", testNow))
	assert.Equal(t, "Scheduled in 5 days", ScheduleStatus("2026-10-20", testNow))
	assert.Equal(t, "Overdue by 3 days", ScheduleStatus("2026-10-12", testNow))
}

func TestRevisionUrgency(t *testing.T) {
	cases := []struct {
		name string
		ch   domain.Chapter
		want Urgency
	}{
		{"never", domain.Chapter{}, UrgencyNever},
		{"revised today", domain.Chapter{LastRevisedDate: "2026-10-15T07:00:00Z"}, UrgencyRevisedToday},
		{"recent", domain.Chapter{LastRevisedDate: "2026-10-10T10:00:00Z"}, UrgencyRecent},
		{"stale", domain.Chapter{LastRevisedDate: "2026-09-25T10:00:00Z"}, UrgencyStale},
		{"long overdue", domain.Chapter{LastRevisedDate: "2026-06-01T10:00:00Z"}, UrgencyLongOverdue},
		{"overdue schedule", domain.Chapter{ScheduledRevisionDate: "2026-10-14"}, UrgencyOverdue},
		{"due today", domain.Chapter{ScheduledRevisionDate: "2026-10-15"}, UrgencyDueToday},
		{"due soon", domain.Chapter{ScheduledRevisionDate: "2026-10-18"}, UrgencyDueSoon},
		{"scheduled", domain.Chapter{ScheduledRevisionDate: "2026-11-01"}, UrgencyScheduled},
		{"schedule wins", domain.Chapter{
			ScheduledRevisionDate: "2026-10-15",
			LastRevisedDate:       "2026-06-01T10:00:00Z",
		}, UrgencyDueToday},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RevisionUrgency(tc.ch, testNow))
		})
	}
}

func TestUrgencyString(t *testing.T) {
	assert.Equal(t, "due today", UrgencyDueToday.String())
	assert.Equal(t, "unknown", Urgency(99).String())
}
