package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
)

// UpdateLineItem applies a sparse patch to one line item and recomputes the
// quote totals. Locked quotes reject the edit before any write.
func (s *Service) UpdateLineItem(ctx context.Context, quoteID, lineItemID snowflake.ID, patch quotedomain.LineItemPatch, actor *string) (*quotedomain.LineItemResult, error) {
	quote, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quotedomain.IsLocked(quote.QuoteState) {
		return nil, quotedomain.ErrQuoteLocked
	}

	item, err := s.lineitemrepo.FindOne(ctx, &quotedomain.LineItem{ID: lineItemID, QuoteID: quoteID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, quotedomain.ErrLineItemNotFound
	}

	applyPatch(item, patch)
	item.LineTotal = item.ComputeTotal()
	now := s.clock.Now()
	item.UpdatedAt = now

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}

	if err := s.stampQuote(ctx, quoteID, actor, now); err != nil {
		return nil, err
	}

	totals, err := s.recomputeTotals(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	quoteIDStr := quoteID.String()
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "quote.line_item.updated",
		ActorID:    actor,
		TargetType: "quote",
		TargetID:   &quoteIDStr,
		Details: map[string]any{
			"line_item_id": lineItemID.String(),
			"line_total":   item.LineTotal,
			"subtotal":     totals.Subtotal,
			"total":        totals.Total,
		},
	})

	return &quotedomain.LineItemResult{LineItem: item, Totals: totals}, nil
}

// CreateManualLineItem inserts an admin-entered line item and recomputes the
// quote totals. Manual lines start without a certification amount.
func (s *Service) CreateManualLineItem(ctx context.Context, quoteID snowflake.ID, input quotedomain.CreateLineItemInput, actor *string) (*quotedomain.LineItemResult, error) {
	quote, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quotedomain.IsLocked(quote.QuoteState) {
		return nil, quotedomain.ErrQuoteLocked
	}

	if input.BillablePages <= 0 {
		return nil, &quotedomain.FieldError{Field: "billable_pages", Message: "must be a positive number"}
	}
	if input.UnitRate <= 0 {
		return nil, &quotedomain.FieldError{Field: "unit_rate", Message: "must be a positive number"}
	}

	now := s.clock.Now()
	pages := input.BillablePages
	rate := input.UnitRate
	certification := 0.0

	item := &quotedomain.LineItem{
		ID:                  s.genID.Generate(),
		QuoteID:             quoteID,
		DocumentName:        input.DocumentName,
		BillablePages:       &pages,
		UnitRate:            &rate,
		CertificationAmount: &certification,
		SourceLanguage:      input.SourceLanguage,
		TargetLanguage:      input.TargetLanguage,
		LineTotal:           pages * rate,
		Source:              quotedomain.LineItemSourceManual,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.lineitemrepo.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := s.stampQuote(ctx, quoteID, actor, now); err != nil {
		return nil, err
	}

	totals, err := s.recomputeTotals(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	quoteIDStr := quoteID.String()
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "quote.line_item.created",
		ActorID:    actor,
		TargetType: "quote",
		TargetID:   &quoteIDStr,
		Details: map[string]any{
			"line_item_id": item.ID.String(),
			"line_total":   item.LineTotal,
			"source":       item.Source,
		},
	})

	return &quotedomain.LineItemResult{LineItem: item, Totals: totals}, nil
}

func applyPatch(item *quotedomain.LineItem, patch quotedomain.LineItemPatch) {
	if patch.BillablePages.Set {
		item.BillablePages = quotedomain.CoerceFloat(patch.BillablePages.Value)
	}
	if patch.UnitRate.Set {
		item.UnitRate = quotedomain.CoerceFloat(patch.UnitRate.Value)
	}
	if patch.UnitRateOverride.Set {
		item.UnitRateOverride = quotedomain.CoerceFloat(patch.UnitRateOverride.Value)
	}
	if patch.OverrideReason.Set {
		item.OverrideReason = patch.OverrideReason.Value
	}
	if patch.CertificationType.Set {
		item.CertificationType = patch.CertificationType.Value
	}
	if patch.CertificationAmount.Set {
		item.CertificationAmount = quotedomain.CoerceFloat(patch.CertificationAmount.Value)
	}
	if patch.SourceLanguage.Set {
		item.SourceLanguage = patch.SourceLanguage.Value
	}
	if patch.TargetLanguage.Set {
		item.TargetLanguage = patch.TargetLanguage.Value
	}
}
