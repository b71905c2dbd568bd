package calendar

import "time"

// QuoteExpiry returns the instant a quote stops being valid: start plus the
// given number of calendar days, keeping the full time component.
func QuoteExpiry(start time.Time, expiryDays int) time.Time {
	return start.AddDate(0, 0, expiryDays)
}
