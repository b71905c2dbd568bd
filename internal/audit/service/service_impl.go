package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/linguasign/certiq/internal/audit/domain"
	"github.com/linguasign/certiq/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  auditdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  auditdomain.Repository
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return
	}

	targetType := strings.TrimSpace(entry.TargetType)
	if targetType == "" {
		targetType = "unknown"
	}

	details := map[string]any{}
	for key, value := range entry.Details {
		if key == "" {
			continue
		}
		details[key] = value
	}

	row := auditdomain.ActivityLog{
		ID:         s.genID.Generate(),
		Action:     action,
		ActorID:    normalizePointer(entry.ActorID),
		TargetType: targetType,
		TargetID:   normalizePointer(entry.TargetID),
		Details:    datatypes.JSONMap(details),
		CreatedAt:  s.clock.Now(),
	}

	// The audit sink must never fail the audited operation.
	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		s.log.Warn("failed to write activity log",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *Service) ListByTarget(ctx context.Context, targetID string, limit int) ([]auditdomain.ActivityLog, error) {
	return s.repo.ListByTarget(ctx, s.db, targetID, limit)
}

func normalizePointer(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
