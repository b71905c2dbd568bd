package service

import (
	"context"
	"testing"
	"time"

	holidaydomain "github.com/linguasign/certiq/internal/holiday/domain"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
	settingsdomain "github.com/linguasign/certiq/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich_WithLocationHolidays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	locationID := env.node.Generate()
	quoteID := env.seedQuote(t, quotedomain.StateUnderReview, &locationID)

	computedAt := time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC) // Monday
	env.seedResults(t, quoteID, computedAt)

	require.NoError(t, env.db.Create(&holidaydomain.Holiday{
		ID:          env.node.Generate(),
		LocationID:  locationID,
		HolidayDate: time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC), // Wednesday
		Name:        "Regional holiday",
	}).Error)

	result := env.svc.Enrich(ctx, quoteID, nil)

	require.True(t, result.Success)
	require.NotNil(t, result.Delivery)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), result.Delivery.EstimatedDeliveryDate)
	assert.Equal(t, 5, result.Delivery.BusinessDaysRequired)
	assert.Equal(t, 1, result.Delivery.SkippedHolidays)
	assert.Equal(t, "3-5 business days", result.Delivery.DeliveryEstimateText)
	assert.True(t, result.Delivery.QuoteExpiresAt.Equal(computedAt.AddDate(0, 0, 30)))

	// Persisted onto the results record.
	require.NotNil(t, result.Results)
	require.NotNil(t, result.Results.EstimatedDeliveryDate)
	assert.Equal(t, "2025-01-15", result.Results.EstimatedDeliveryDate.Format("2006-01-02"))
	require.NotNil(t, result.Results.DeliveryEstimateText)
	assert.Equal(t, "3-5 business days", *result.Results.DeliveryEstimateText)
	require.NotNil(t, result.Results.LocationID)
	assert.Equal(t, locationID, *result.Results.LocationID)

	assert.EqualValues(t, 1, env.countAuditEntries(t, "quote.delivery_computed"))
}

func TestEnrich_UsesConfiguredTurnaround(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quoteID := env.seedQuote(t, quotedomain.StateDraft, nil)
	computedAt := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	env.seedResults(t, quoteID, computedAt)

	require.NoError(t, env.db.Create(&settingsdomain.Setting{
		Key:   settingsdomain.KeyDefaultTurnaroundTime,
		Value: "2 business days",
	}).Error)
	require.NoError(t, env.db.Create(&settingsdomain.Setting{
		Key:   settingsdomain.KeyQuoteExpiryDays,
		Value: "14",
	}).Error)

	result := env.svc.Enrich(ctx, quoteID, nil)

	require.True(t, result.Success)
	assert.Equal(t, time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC), result.Delivery.EstimatedDeliveryDate)
	assert.Equal(t, 2, result.Delivery.BusinessDaysRequired)
	assert.Equal(t, 14, result.Delivery.ExpiryDays)
	assert.True(t, result.Delivery.QuoteExpiresAt.Equal(computedAt.AddDate(0, 0, 14)))
}

func TestEnrich_LockedQuote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, state := range []quotedomain.QuoteState{quotedomain.StateSent, quotedomain.StateAccepted, quotedomain.StateConverted} {
		quoteID := env.seedQuote(t, state, nil)
		env.seedResults(t, quoteID, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC))

		result := env.svc.Enrich(ctx, quoteID, nil)

		assert.False(t, result.Success, "state %s", state)
		assert.ErrorIs(t, result.Err, quotedomain.ErrQuoteLocked, "state %s", state)

		// The locked quote's results are untouched.
		var results quotedomain.QuoteResults
		require.NoError(t, env.db.First(&results, "quote_id = ?", quoteID).Error)
		assert.Nil(t, results.EstimatedDeliveryDate, "state %s", state)
		assert.Nil(t, results.QuoteExpiresAt, "state %s", state)
	}
}

func TestEnrich_NotReadyWithoutResults(t *testing.T) {
	env := newTestEnv(t)

	quoteID := env.seedQuote(t, quotedomain.StateDraft, nil)

	result := env.svc.Enrich(context.Background(), quoteID, nil)

	assert.False(t, result.Success)
	assert.True(t, result.NotReady)
	assert.NoError(t, result.Err)
}

func TestEnrich_UnknownQuote(t *testing.T) {
	env := newTestEnv(t)

	result := env.svc.Enrich(context.Background(), env.node.Generate(), nil)

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, quotedomain.ErrQuoteNotFound)
}

func TestEnrich_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quoteID := env.seedQuote(t, quotedomain.StateReady, nil)
	env.seedResults(t, quoteID, time.Date(2025, time.February, 3, 12, 0, 0, 0, time.UTC))

	first := env.svc.Enrich(ctx, quoteID, nil)
	require.True(t, first.Success)

	env.clock.Advance(48 * time.Hour)

	second := env.svc.Enrich(ctx, quoteID, nil)
	require.True(t, second.Success)

	// computed_at anchors the calculation, so re-running does not move dates.
	assert.Equal(t, first.Delivery.EstimatedDeliveryDate, second.Delivery.EstimatedDeliveryDate)
	assert.Equal(t, first.Delivery.QuoteExpiresAt, second.Delivery.QuoteExpiresAt)
}
