package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	"github.com/linguasign/certiq/internal/calendar"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
	settingsdomain "github.com/linguasign/certiq/internal/settings/domain"
	"go.uber.org/zap"
)

const (
	fallbackTurnaround = "3-5 business days"
	fallbackExpiryDays = 30
)

// Enrich computes and persists the delivery date and expiry instant for a
// quote. Every failure is captured in the returned result; this method
// never propagates an error to its caller.
func (s *Service) Enrich(ctx context.Context, quoteID snowflake.ID, locationID *snowflake.ID) quotedomain.EnrichResult {
	quote, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return s.enrichFailed(quoteID, err)
	}
	if quotedomain.IsLocked(quote.QuoteState) {
		return s.enrichFailed(quoteID, quotedomain.ErrQuoteLocked)
	}

	results, err := s.resultsrepo.FindOne(ctx, &quotedomain.QuoteResults{QuoteID: quoteID})
	if err != nil {
		return s.enrichFailed(quoteID, err)
	}
	if results == nil {
		// Pricing has not been computed yet; not an error.
		return quotedomain.EnrichResult{NotReady: true}
	}

	if locationID == nil {
		locationID = quote.LocationID
	}

	turnaround := s.settingsSvc.Get(ctx, settingsdomain.KeyDefaultTurnaroundTime, fallbackTurnaround)
	expiryDays := s.settingsSvc.GetInt(ctx, settingsdomain.KeyQuoteExpiryDays, fallbackExpiryDays)
	businessDays := calendar.ParseBusinessDays(turnaround)

	reference := s.clock.Now()
	if results.ComputedAt != nil {
		reference = *results.ComputedAt
	}

	estimate := s.estimator.Estimate(ctx, locationID, businessDays, reference)
	expiresAt := calendar.QuoteExpiry(reference, expiryDays)
	deliveryDate := calendar.DateOnly(estimate.EstimatedDeliveryDate)

	err = s.db.WithContext(ctx).Model(&quotedomain.QuoteResults{}).
		Where("quote_id = ?", quoteID).
		Updates(map[string]any{
			"estimated_delivery_date": deliveryDate,
			"delivery_estimate_text":  turnaround,
			"quote_expires_at":        expiresAt,
			"location_id":             locationID,
			"updated_at":              s.clock.Now(),
		}).Error
	if err != nil {
		return s.enrichFailed(quoteID, err)
	}

	updated, err := s.resultsrepo.FindOne(ctx, &quotedomain.QuoteResults{QuoteID: quoteID})
	if err != nil {
		return s.enrichFailed(quoteID, err)
	}

	quoteIDStr := quoteID.String()
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "quote.delivery_computed",
		TargetType: "quote",
		TargetID:   &quoteIDStr,
		Details: map[string]any{
			"estimated_delivery_date": deliveryDate.Format(calendar.DateLayout),
			"business_days":           estimate.BusinessDaysRequired,
			"skipped_holidays":        estimate.SkippedHolidays,
			"expiry_days":             expiryDays,
		},
	})

	return quotedomain.EnrichResult{
		Success: true,
		Results: updated,
		Delivery: &quotedomain.DeliveryInfo{
			EstimatedDeliveryDate: deliveryDate,
			DeliveryEstimateText:  turnaround,
			BusinessDaysRequired:  estimate.BusinessDaysRequired,
			SkippedHolidays:       estimate.SkippedHolidays,
			QuoteExpiresAt:        expiresAt,
			ExpiryDays:            expiryDays,
		},
	}
}

func (s *Service) enrichFailed(quoteID snowflake.ID, err error) quotedomain.EnrichResult {
	s.log.Error("quote enrichment failed",
		zap.Int64("quote_id", int64(quoteID)),
		zap.Error(err),
	)
	return quotedomain.EnrichResult{Err: err}
}
