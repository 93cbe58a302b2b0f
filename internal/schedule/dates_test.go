package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"future", "2026-10-20", 5},
		{"today", "2026-10-15", 0},
		{"tomorrow", "2026-10-16", 1},
		{"past clamps to zero", "2025-12-30", 0},
		{"unparsable", "next tuesday", 0},
		{"empty", "", 0},
		{"rfc3339", "2026-10-25T00:00:00Z", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysUntil(tc.target, testNow))
		})
	}
}

func TestDaysUntil_LateEvening(t *testing.T) {
	late := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil("2026-10-16", late))
}

func TestDaysUntil_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysUntil("2026-03-09", now))
}

func TestFormatOrdinalDate(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "1st Oct, 26"},
		{2, "2nd Oct, 26"},
		{3, "3rd Oct, 26"},
		{4, "4th Oct, 26"},
		{11, "11th Oct, 26"},
		{12, "12th Oct, 26"},
		{13, "13th Oct, 26"},
		{21, "21st Oct, 26"},
		{22, "22nd Oct, 26"},
		{23, "23rd Oct, 26"},
		{31, "31st Oct, 26"},
	}
	for _, tc := range cases {
		d := time.Date(2026, 10, tc.day, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, FormatOrdinalDate(d))
	}
	assert.Equal(t, "15th Oct, 26", CurrentDate(testNow))
}

func TestFormatLongOrdinalDate(t *testing.T) {
	assert.Equal(t, "15th October, 2026", FormatLongOrdinalDate(testNow))
}

func TestValidateDayAndClock(t *testing.T) {
	assert.NoError(t, ValidateDay("2026-01-31"))
	assert.Error(t, ValidateDay("2026-02-30"))
	assert.Error(t, ValidateDay("31/01/2026"))

	assert.NoError(t, ValidateClock("07:30"))
	assert.Error(t, ValidateClock("25:00"))
	assert.Error(t, ValidateClock("7pm"))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-10-20", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Day())

	_, err = ParseDay("garbage", time.UTC)
	assert.Error(t, err)
}
