package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	holidaydomain "github.com/linguasign/certiq/internal/holiday/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type holidayRepoStub struct {
	rows []holidaydomain.Holiday
	err  error

	calls int
}

func (s *holidayRepoStub) ListFrom(ctx context.Context, locationID snowflake.ID, from time.Time) ([]holidaydomain.Holiday, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func newEstimator(repo holidaydomain.Repository) *Estimator {
	return NewEstimator(Params{Log: zap.NewNop(), Holidays: repo})
}

func TestEstimate_NoLocation(t *testing.T) {
	repo := &holidayRepoStub{}
	est := newEstimator(repo)

	got := est.Estimate(context.Background(), nil, 5, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), got.EstimatedDeliveryDate)
	assert.Equal(t, 5, got.BusinessDaysRequired)
	assert.Equal(t, 0, got.SkippedHolidays)
	assert.Equal(t, 0, repo.calls, "no holiday lookup without a location")
}

func TestEstimate_WithLocationHolidays(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	locationID := node.Generate()

	repo := &holidayRepoStub{rows: []holidaydomain.Holiday{
		{LocationID: locationID, HolidayDate: time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)},
	}}
	est := newEstimator(repo)

	got := est.Estimate(context.Background(), &locationID, 5, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), got.EstimatedDeliveryDate)
	assert.Equal(t, 1, got.SkippedHolidays)
	assert.Equal(t, 1, repo.calls)
}

func TestEstimate_HolidayLookupFailureFallsBack(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	locationID := node.Generate()

	repo := &holidayRepoStub{err: errors.New("calendar store unavailable")}
	est := newEstimator(repo)

	got := est.Estimate(context.Background(), &locationID, 5, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))

	// Falls back to the plain business-day walk.
	assert.Equal(t, time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), got.EstimatedDeliveryDate)
	assert.Equal(t, 0, got.SkippedHolidays)
}
