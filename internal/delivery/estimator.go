// Package delivery computes estimated delivery dates with an optional
// fulfillment-location holiday calendar.
package delivery

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/linguasign/certiq/internal/calendar"
	holidaydomain "github.com/linguasign/certiq/internal/holiday/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Estimate is one computed delivery estimate.
type Estimate struct {
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	BusinessDaysRequired  int       `json:"business_days_required"`
	SkippedHolidays       int       `json:"skipped_holidays"`
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Holidays holidaydomain.Repository
}

// Estimator walks business days forward from a reference instant, skipping
// the location's holidays when a location is given.
type Estimator struct {
	log      *zap.Logger
	holidays holidaydomain.Repository
}

func NewEstimator(p Params) *Estimator {
	return &Estimator{
		log:      p.Log.Named("delivery.estimator"),
		holidays: p.Holidays,
	}
}

// Estimate computes the delivery date businessDays out from start. A holiday
// lookup failure falls back to the no-holiday walk; delivery estimation
// never blocks on the calendar store.
func (e *Estimator) Estimate(ctx context.Context, locationID *snowflake.ID, businessDays int, start time.Time) Estimate {
	if locationID == nil {
		date, _ := calendar.AddBusinessDays(start, businessDays, nil)
		return Estimate{
			EstimatedDeliveryDate: date,
			BusinessDaysRequired:  businessDays,
			SkippedHolidays:       0,
		}
	}

	rows, err := e.holidays.ListFrom(ctx, *locationID, start)
	if err != nil {
		e.log.Warn("holiday lookup failed, estimating without holidays",
			zap.Int64("location_id", int64(*locationID)),
			zap.Error(err),
		)
		date, _ := calendar.AddBusinessDays(start, businessDays, nil)
		return Estimate{
			EstimatedDeliveryDate: date,
			BusinessDaysRequired:  businessDays,
			SkippedHolidays:       0,
		}
	}

	holidaySet := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		holidaySet[row.HolidayDate.Format(calendar.DateLayout)] = struct{}{}
	}

	date, skipped := calendar.AddBusinessDays(start, businessDays, holidaySet)
	return Estimate{
		EstimatedDeliveryDate: date,
		BusinessDaysRequired:  businessDays,
		SkippedHolidays:       skipped,
	}
}
