package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteExpiry(t *testing.T) {
	start := time.Date(2025, time.January, 6, 14, 30, 45, 0, time.UTC)

	got := QuoteExpiry(start, 30)

	assert.Equal(t, time.Date(2025, time.February, 5, 14, 30, 45, 0, time.UTC), got)
}

func TestQuoteExpiry_CrossesYearBoundary(t *testing.T) {
	start := time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC)

	got := QuoteExpiry(start, 30)

	assert.Equal(t, time.Date(2026, time.January, 19, 9, 0, 0, 0, time.UTC), got)
}
