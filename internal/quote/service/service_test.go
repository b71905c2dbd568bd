package service

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	auditrepository "github.com/linguasign/certiq/internal/audit/repository"
	auditservice "github.com/linguasign/certiq/internal/audit/service"
	"github.com/linguasign/certiq/internal/clock"
	"github.com/linguasign/certiq/internal/config"
	"github.com/linguasign/certiq/internal/delivery"
	holidaydomain "github.com/linguasign/certiq/internal/holiday/domain"
	holidayrepository "github.com/linguasign/certiq/internal/holiday/repository"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
	settingsdomain "github.com/linguasign/certiq/internal/settings/domain"
	settingsservice "github.com/linguasign/certiq/internal/settings/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc   quotedomain.Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&quotedomain.Quote{},
		&quotedomain.LineItem{},
		&quotedomain.QuoteResults{},
		&holidaydomain.Holiday{},
		&settingsdomain.Setting{},
		&auditdomain.ActivityLog{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	logger := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC))

	settingsSvc := settingsservice.NewService(settingsservice.Params{DB: db, Log: logger})
	auditSvc := auditservice.NewService(auditservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Clock: clk,
		Repo:  auditrepository.Provide(),
	})
	estimator := delivery.NewEstimator(delivery.Params{
		Log:      logger,
		Holidays: holidayrepository.Provide(db),
	})

	svc := NewService(ServiceParam{
		DB:          db,
		Log:         logger,
		GenID:       node,
		Clock:       clk,
		Cfg:         config.Config{DefaultTaxRate: 0.05},
		SettingsSvc: settingsSvc,
		AuditSvc:    auditSvc,
		Estimator:   estimator,
	})

	return &testEnv{svc: svc, db: db, node: node, clock: clk}
}

func (e *testEnv) seedQuote(t *testing.T, state quotedomain.QuoteState, locationID *snowflake.ID) snowflake.ID {
	t.Helper()

	id := e.node.Generate()
	require.NoError(t, e.db.Create(&quotedomain.Quote{
		ID:         id,
		QuoteState: state,
		LocationID: locationID,
		CreatedAt:  e.clock.Now(),
		UpdatedAt:  e.clock.Now(),
	}).Error)
	return id
}

func (e *testEnv) seedResults(t *testing.T, quoteID snowflake.ID, computedAt time.Time) {
	t.Helper()

	require.NoError(t, e.db.Create(&quotedomain.QuoteResults{
		QuoteID:    quoteID,
		ComputedAt: &computedAt,
		UpdatedAt:  computedAt,
	}).Error)
}

func (e *testEnv) seedLineItem(t *testing.T, quoteID snowflake.ID, pages, rate float64) snowflake.ID {
	t.Helper()

	id := e.node.Generate()
	item := quotedomain.LineItem{
		ID:            id,
		QuoteID:       quoteID,
		BillablePages: &pages,
		UnitRate:      &rate,
		Source:        quotedomain.LineItemSourceExtracted,
		CreatedAt:     e.clock.Now(),
		UpdatedAt:     e.clock.Now(),
	}
	item.LineTotal = item.ComputeTotal()
	require.NoError(t, e.db.Create(&item).Error)
	return id
}

func (e *testEnv) countAuditEntries(t *testing.T, action string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&auditdomain.ActivityLog{}).Where("action = ?", action).Count(&count).Error)
	return count
}
