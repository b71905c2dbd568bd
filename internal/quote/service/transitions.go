package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
)

// ApplyTransition validates and applies a lifecycle transition. An invalid
// transition performs no mutation.
func (s *Service) ApplyTransition(ctx context.Context, quoteID snowflake.ID, newState string, actor *string) (*quotedomain.TransitionResult, error) {
	quote, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	from := quotedomain.NormalizeState(string(quote.QuoteState))
	to := quotedomain.NormalizeState(newState)

	if err := quotedomain.CanTransition(from, to); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	err = s.db.WithContext(ctx).Model(&quotedomain.Quote{}).
		Where("id = ?", quoteID).
		Updates(map[string]any{
			"quote_state":      to,
			"state_changed_at": now,
			"state_changed_by": actor,
			"last_edited_by":   actor,
			"last_edited_at":   now,
			"updated_at":       now,
		}).Error
	if err != nil {
		return nil, err
	}

	quoteIDStr := quoteID.String()
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "quote.state_changed",
		ActorID:    actor,
		TargetType: "quote",
		TargetID:   &quoteIDStr,
		Details: map[string]any{
			"from": string(from),
			"to":   string(to),
		},
	})

	return &quotedomain.TransitionResult{
		QuoteState: to,
		CanEdit:    !quotedomain.IsLocked(to),
	}, nil
}
