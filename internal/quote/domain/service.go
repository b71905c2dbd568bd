package domain

import (
	"context"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
)

// OptionalFloat distinguishes an absent patch field from one explicitly set
// (possibly to null).
type OptionalFloat struct {
	Set   bool
	Value *float64
}

// OptionalString distinguishes an absent patch field from one explicitly
// set (possibly to null).
type OptionalString struct {
	Set   bool
	Value *string
}

// CoerceFloat converts loosely-typed numeric input to a float pointer.
// Invalid or non-finite values coerce to nil rather than failing the
// request.
func CoerceFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	v := *value
	return &v
}

// LineItemPatch is a sparse update to one line item. Only fields with Set
// true are applied.
type LineItemPatch struct {
	BillablePages       OptionalFloat
	UnitRate            OptionalFloat
	UnitRateOverride    OptionalFloat
	OverrideReason      OptionalString
	CertificationType   OptionalString
	CertificationAmount OptionalFloat
	SourceLanguage      OptionalString
	TargetLanguage      OptionalString
}

// CreateLineItemInput describes a manually entered line item.
type CreateLineItemInput struct {
	DocumentName   string
	BillablePages  float64
	UnitRate       float64
	SourceLanguage *string
	TargetLanguage *string
}

// Totals is the recomputed quote-level pricing summary.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	TaxRate  float64 `json:"tax_rate"`
}

// LineItemResult pairs a mutated line item with the refreshed totals.
type LineItemResult struct {
	LineItem *LineItem `json:"line_item"`
	Totals   Totals    `json:"totals"`
}

// DeliveryInfo summarizes one delivery/expiry computation.
type DeliveryInfo struct {
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	DeliveryEstimateText  string    `json:"delivery_estimate_text"`
	BusinessDaysRequired  int       `json:"business_days_required"`
	SkippedHolidays       int       `json:"skipped_holidays"`
	QuoteExpiresAt        time.Time `json:"quote_expires_at"`
	ExpiryDays            int       `json:"expiry_days"`
}

// EnrichResult is the outcome of a delivery/expiry enrichment. Failures are
// carried in the result instead of escaping the service boundary so batch
// callers can branch without error handling.
type EnrichResult struct {
	Success  bool
	NotReady bool
	Results  *QuoteResults
	Delivery *DeliveryInfo
	Err      error
}

// TransitionResult reports an applied lifecycle transition.
type TransitionResult struct {
	QuoteState QuoteState `json:"quote_state"`
	CanEdit    bool       `json:"can_edit"`
}

// QuoteView is the admin-console read model: the quote record, its line
// items and the cached pricing results.
type QuoteView struct {
	Quote     *Quote        `json:"quote"`
	LineItems []LineItem    `json:"line_items"`
	Results   *QuoteResults `json:"results,omitempty"`
}

// Service is the quote engine: enrichment, line-item recalculation and
// lifecycle transitions.
type Service interface {
	Enrich(ctx context.Context, quoteID snowflake.ID, locationID *snowflake.ID) EnrichResult
	UpdateLineItem(ctx context.Context, quoteID, lineItemID snowflake.ID, patch LineItemPatch, actor *string) (*LineItemResult, error)
	CreateManualLineItem(ctx context.Context, quoteID snowflake.ID, input CreateLineItemInput, actor *string) (*LineItemResult, error)
	ApplyTransition(ctx context.Context, quoteID snowflake.ID, newState string, actor *string) (*TransitionResult, error)
	GetQuote(ctx context.Context, quoteID snowflake.ID) (*QuoteView, error)
}
