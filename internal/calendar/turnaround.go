package calendar

import (
	"regexp"
	"strconv"
)

// DefaultTurnaroundDays is used when a turnaround description carries no
// usable day count.
const DefaultTurnaroundDays = 5

var turnaroundPattern = regexp.MustCompile(`(\d+)(?:\s*-\s*(\d+))?`)

// ParseBusinessDays extracts a business-day count from a free-text
// turnaround description. A range ("3-5 business days") resolves to its
// upper bound; a single number ("3 business days") to itself. Text without
// digits resolves to DefaultTurnaroundDays. The result is always positive.
func ParseBusinessDays(text string) int {
	match := turnaroundPattern.FindStringSubmatch(text)
	if match == nil {
		return DefaultTurnaroundDays
	}

	raw := match[1]
	if match[2] != "" {
		raw = match[2]
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return DefaultTurnaroundDays
	}
	return days
}
