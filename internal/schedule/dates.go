// Package schedule holds the wall-clock helpers of the tracker: deadline
// countdowns, ordinal dates, the hourly quote and daily greeting rotation,
// and revision status labels. Callers always pass now explicitly.
package schedule

import (
	"fmt"
	"math"
	"time"
)

// DayLayout is the ISO date layout used for every stored date.
const DayLayout = "2006-01-02"

// ClockLayout is the HH:MM layout used for scheduled revision times.
const ClockLayout = "15:04"

// ParseDay parses an ISO date (or an RFC3339 timestamp) in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DayLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t.In(loc), nil
}

// ValidateDay returns an error unless s is a YYYY-MM-DD date.
func ValidateDay(s string) error {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return nil
}

// ValidateClock returns an error unless s is an HH:MM time of day.
func ValidateClock(s string) error {
	if _, err := time.Parse(ClockLayout, s); err != nil {
		return fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return nil
}

// DaysBetween returns the signed number of calendar days from a to b,
// comparing local midnights so DST changes never produce fractions.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// DaysUntil returns the whole days from today until targetISO, never
// negative. Past and unparsable deadlines report 0.
func DaysUntil(targetISO string, now time.Time) int {
	target, err := ParseDay(targetISO, now.Location())
	if err != nil {
		return 0
	}
	return max(0, DaysBetween(now, target))
}

// OrdinalSuffix returns the English ordinal suffix for a day of month.
func OrdinalSuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}

// FormatOrdinalDate renders t as "15th Oct, 26".
func FormatOrdinalDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s, %s", t.Day(), OrdinalSuffix(t.Day()), t.Format("Jan"), t.Format("06"))
}

// FormatLongOrdinalDate renders t as "15th October, 2026".
func FormatLongOrdinalDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s, %d", t.Day(), OrdinalSuffix(t.Day()), t.Format("January"), t.Year())
}

// CurrentDate is the display date stored in AppState.CurrentDate.
func CurrentDate(now time.Time) string {
	return FormatOrdinalDate(now)
}
