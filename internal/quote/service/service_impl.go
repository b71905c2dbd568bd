package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	"github.com/linguasign/certiq/internal/clock"
	"github.com/linguasign/certiq/internal/config"
	"github.com/linguasign/certiq/internal/delivery"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
	settingsdomain "github.com/linguasign/certiq/internal/settings/domain"
	"github.com/linguasign/certiq/pkg/db"
	"github.com/linguasign/certiq/pkg/db/option"
	"github.com/linguasign/certiq/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Cfg         config.Config
	SettingsSvc settingsdomain.Service
	AuditSvc    auditdomain.Service
	Estimator   *delivery.Estimator
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	clock       clock.Clock
	cfg         config.Config
	settingsSvc settingsdomain.Service
	auditSvc    auditdomain.Service
	estimator   *delivery.Estimator

	quoterepo    repository.Repository[quotedomain.Quote]
	lineitemrepo repository.Repository[quotedomain.LineItem]
	resultsrepo  repository.Repository[quotedomain.QuoteResults]
}

func NewService(p ServiceParam) quotedomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("quote.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		cfg:         p.Cfg,
		settingsSvc: p.SettingsSvc,
		auditSvc:    p.AuditSvc,
		estimator:   p.Estimator,

		quoterepo:    repository.ProvideStore[quotedomain.Quote](p.DB),
		lineitemrepo: repository.ProvideStore[quotedomain.LineItem](p.DB),
		resultsrepo:  repository.ProvideStore[quotedomain.QuoteResults](p.DB),
	}
}

func (s *Service) GetQuote(ctx context.Context, quoteID snowflake.ID) (*quotedomain.QuoteView, error) {
	quote, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	items, err := s.listLineItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultsrepo.FindOne(ctx, &quotedomain.QuoteResults{QuoteID: quoteID})
	if err != nil {
		return nil, err
	}

	return &quotedomain.QuoteView{
		Quote:     quote,
		LineItems: items,
		Results:   results,
	}, nil
}

func (s *Service) loadQuote(ctx context.Context, quoteID snowflake.ID) (*quotedomain.Quote, error) {
	quote, err := s.quoterepo.FindOne(ctx, &quotedomain.Quote{ID: quoteID})
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, quotedomain.ErrQuoteNotFound
	}
	return quote, nil
}

func (s *Service) listLineItems(ctx context.Context, quoteID snowflake.ID) ([]quotedomain.LineItem, error) {
	rows, err := s.lineitemrepo.Find(ctx, &quotedomain.LineItem{QuoteID: quoteID},
		option.WithSortBy(option.WithQuerySortBy("created_at", "asc", map[string]bool{"created_at": true})),
	)
	if err != nil {
		return nil, err
	}

	items := make([]quotedomain.LineItem, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		items = append(items, *row)
	}
	return items, nil
}

// recomputeTotals rebuilds the quote-level pricing summary from the current
// line items and upserts it onto QuoteResults.
func (s *Service) recomputeTotals(ctx context.Context, quoteID snowflake.ID) (quotedomain.Totals, error) {
	items, err := s.listLineItems(ctx, quoteID)
	if err != nil {
		return quotedomain.Totals{}, err
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal
	}

	taxRate := s.settingsSvc.GetFloat(ctx, settingsdomain.KeyTaxRate, s.cfg.DefaultTaxRate)
	tax := subtotal * taxRate
	totals := quotedomain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
		TaxRate:  taxRate,
	}

	now := s.clock.Now()
	existing, err := s.resultsrepo.FindOne(ctx, &quotedomain.QuoteResults{QuoteID: quoteID})
	if err != nil {
		return quotedomain.Totals{}, err
	}

	if existing == nil {
		err = s.resultsrepo.Create(ctx, &quotedomain.QuoteResults{
			QuoteID:    quoteID,
			Subtotal:   totals.Subtotal,
			Tax:        totals.Tax,
			Total:      totals.Total,
			ComputedAt: &now,
			UpdatedAt:  now,
		})
		if db.IsDuplicateKeyErr(err) {
			// Lost a create race with a concurrent recalculation.
			existing = &quotedomain.QuoteResults{QuoteID: quoteID}
			err = nil
		}
	}
	if existing != nil {
		err = s.db.WithContext(ctx).Model(&quotedomain.QuoteResults{}).
			Where("quote_id = ?", quoteID).
			Updates(map[string]any{
				"subtotal":    totals.Subtotal,
				"tax":         totals.Tax,
				"total":       totals.Total,
				"computed_at": now,
				"updated_at":  now,
			}).Error
	}
	if err != nil {
		return quotedomain.Totals{}, err
	}

	return totals, nil
}

// stampQuote records who touched the quote last.
func (s *Service) stampQuote(ctx context.Context, quoteID snowflake.ID, actor *string, now time.Time) error {
	return s.db.WithContext(ctx).Model(&quotedomain.Quote{}).
		Where("id = ?", quoteID).
		Updates(map[string]any{
			"last_edited_by": actor,
			"last_edited_at": now,
			"updated_at":     now,
		}).Error
}
