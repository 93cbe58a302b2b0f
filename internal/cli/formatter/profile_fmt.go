package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// FormatProfile renders the onboarding profile and exam countdown.
func FormatProfile(s domain.AppState, now time.Time) string {
	if s.UserProfile == nil {
		return Dim("No profile set. Run `profile set` to get started.") + "\n" +
			FormatCountdown(s.TargetDeadline, now) + "\n"
	}
	p := s.UserProfile
	var b strings.Builder
	fmt.Fprintf(&b, "Name       %s\n", Bold(p.Name))
	fmt.Fprintf(&b, "Exam       %s %s\n", p.Exam, p.Year)
	examDate := p.ExamDate
	if t, err := schedule.ParseDay(p.ExamDate, now.Location()); err == nil {
		examDate = schedule.FormatLongOrdinalDate(t)
	}
	fmt.Fprintf(&b, "Exam date  %s\n\n", examDate)
	b.WriteString(FormatCountdown(s.TargetDeadline, now))
	return RenderBox("Profile", b.String())
}

// FormatHowTo is the static usage guide shown on the how-to page.
func FormatHowTo() string {
	sections := []struct{ title, body string }{
		{"First time", "Set up your profile with `profile set`. Your exam date becomes the countdown target."},
		{"Subjects", "Physics, Chemistry and Mathematics are ready. Add more with `subject add NAME --short S` (1-3 characters)."},
		{"Chapters", "Add chapters to the active subject, give them a difficulty and an optional target date."},
		{"Activities", "Each chapter holds activities such as notes or PYQs. A chapter is complete when every activity is ticked."},
		{"Progress", "Progress counts activities, not chapters, across every subject."},
		{"Revision", "Mark a chapter revised after each pass. Schedule the next one and get a reminder on the day."},
		{"Tests", "Record practice tests in four steps. Marks are +4 per correct answer and -1 per incorrect one."},
		{"Backup", "Export everything to a JSON file and import it on another machine. Imports can be rolled back."},
	}
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "%s\n  %s\n\n", StyleHeader.Render(s.title), s.body)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
