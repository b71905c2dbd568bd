package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddBusinessDays_ZeroDays(t *testing.T) {
	start := date(2025, time.January, 6)

	got, skipped := AddBusinessDays(start, 0, nil)

	assert.Equal(t, start, got)
	assert.Equal(t, 0, skipped)
}

func TestAddBusinessDays_Weekdays(t *testing.T) {
	// Monday + 3 business days = Thursday.
	got, skipped := AddBusinessDays(date(2025, time.January, 6), 3, nil)

	assert.Equal(t, date(2025, time.January, 9), got)
	assert.Equal(t, 0, skipped)
}

func TestAddBusinessDays_SkipsWeekend(t *testing.T) {
	// Friday + 1 business day = Monday.
	got, skipped := AddBusinessDays(date(2025, time.January, 3), 1, nil)

	assert.Equal(t, date(2025, time.January, 6), got)
	assert.Equal(t, 0, skipped)

	// Monday + 5 business days = next Monday.
	got, _ = AddBusinessDays(date(2025, time.January, 6), 5, nil)
	assert.Equal(t, date(2025, time.January, 13), got)
}

func TestAddBusinessDays_SkipsHoliday(t *testing.T) {
	holidays := map[string]struct{}{
		"2025-01-08": {},
	}

	// Monday Jan 6 + 5 business days with Wednesday Jan 8 as a holiday.
	got, skipped := AddBusinessDays(date(2025, time.January, 6), 5, holidays)

	assert.Equal(t, date(2025, time.January, 15), got)
	assert.Equal(t, 1, skipped)
}

func TestAddBusinessDays_WeekendHolidayNotCounted(t *testing.T) {
	holidays := map[string]struct{}{
		"2025-01-11": {}, // Saturday
	}

	got, skipped := AddBusinessDays(date(2025, time.January, 10), 1, holidays)

	assert.Equal(t, date(2025, time.January, 13), got)
	assert.Equal(t, 0, skipped)
}

func TestAddBusinessDays_NeverLandsOnHolidayOrWeekend(t *testing.T) {
	holidays := map[string]struct{}{
		"2025-12-25": {},
		"2025-12-26": {},
		"2026-01-01": {},
	}

	start := date(2025, time.December, 19)
	for n := 1; n <= 15; n++ {
		got, _ := AddBusinessDays(start, n, holidays)

		assert.NotEqual(t, time.Saturday, got.Weekday(), "n=%d", n)
		assert.NotEqual(t, time.Sunday, got.Weekday(), "n=%d", n)
		_, isHoliday := holidays[got.Format(DateLayout)]
		assert.False(t, isHoliday, "n=%d landed on holiday %s", n, got.Format(DateLayout))
		assert.True(t, got.After(start), "n=%d", n)
	}
}

func TestAddBusinessDays_TimezoneStable(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	local := time.Date(2025, time.January, 6, 23, 30, 0, 0, loc)

	got, _ := AddBusinessDays(local, 3, nil)

	// Same calendar date as a UTC midnight start.
	want, _ := AddBusinessDays(date(2025, time.January, 6), 3, nil)
	assert.Equal(t, want, got)
}

func TestDateOnly(t *testing.T) {
	instant := time.Date(2025, time.March, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, date(2025, time.March, 14), DateOnly(instant))
}
