// Package calendar implements business-day arithmetic for delivery and
// expiry estimation. All functions are pure and operate on calendar-date
// components so results do not drift with the machine timezone.
package calendar

import "time"

// DateLayout is the canonical date-only format used for holiday lookups.
const DateLayout = "2006-01-02"

// DateOnly truncates t to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddBusinessDays walks forward from start until n business days have been
// counted. A day counts only if it is Mon-Fri and its date string is not in
// holidays. A skipped holiday advances the walk past the following calendar
// day as well, pushing the landing date out by a full day. Returns the
// landing date and the number of weekday holidays skipped. n <= 0 returns
// the start date unchanged.
func AddBusinessDays(start time.Time, n int, holidays map[string]struct{}) (time.Time, int) {
	current := DateOnly(start)
	if n <= 0 {
		return current, 0
	}

	added := 0
	skipped := 0
	for added < n {
		current = current.AddDate(0, 0, 1)

		switch current.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}

		if _, ok := holidays[current.Format(DateLayout)]; ok {
			skipped++
			current = current.AddDate(0, 0, 1)
			continue
		}

		added++
	}

	return current, skipped
}
