package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/linguasign/certiq/internal/calendar"
	"github.com/linguasign/certiq/internal/holiday/domain"
	"github.com/linguasign/certiq/pkg/db/option"
	"github.com/linguasign/certiq/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Holiday]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Holiday](db)}
}

func (r *repo) ListFrom(ctx context.Context, locationID snowflake.ID, from time.Time) ([]domain.Holiday, error) {
	filter := &domain.Holiday{LocationID: locationID}

	items, err := r.store.Find(ctx, filter,
		option.ApplyOperator(option.Condition{
			Field:    "holiday_date",
			Operator: option.GTE,
			Value:    calendar.DateOnly(from),
		}),
		option.WithSortBy(option.WithQuerySortBy("holiday_date", "asc", map[string]bool{"holiday_date": true})),
	)
	if err != nil {
		return nil, err
	}

	holidays := make([]domain.Holiday, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		holidays = append(holidays, *item)
	}

	return holidays, nil
}
