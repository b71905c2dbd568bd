package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Repository reads location holiday calendars.
type Repository interface {
	// ListFrom returns all holidays for the location on or after from,
	// ordered by date.
	ListFrom(ctx context.Context, locationID snowflake.ID, from time.Time) ([]Holiday, error)
}
