// Package clock abstracts time for delivery and expiry computations so
// services stay deterministic under test.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
