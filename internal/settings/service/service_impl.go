package service

import (
	"context"
	"strconv"
	"strings"

	settingsdomain "github.com/linguasign/certiq/internal/settings/domain"
	"github.com/linguasign/certiq/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log   *zap.Logger
	store repository.Repository[settingsdomain.Setting]
}

func NewService(p Params) settingsdomain.Service {
	return &Service{
		log:   p.Log.Named("settings.service"),
		store: repository.ProvideStore[settingsdomain.Setting](p.DB),
	}
}

func (s *Service) Get(ctx context.Context, key, fallback string) string {
	item, err := s.store.FindOne(ctx, &settingsdomain.Setting{Key: key})
	if err != nil {
		s.log.Warn("settings read failed, using fallback",
			zap.String("key", key),
			zap.Error(err),
		)
		return fallback
	}
	if item == nil || strings.TrimSpace(item.Value) == "" {
		return fallback
	}
	return item.Value
}

func (s *Service) GetInt(ctx context.Context, key string, fallback int) int {
	raw := s.Get(ctx, key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.log.Warn("settings value is not an integer, using fallback",
			zap.String("key", key),
			zap.String("value", raw),
		)
		return fallback
	}
	return value
}

func (s *Service) GetFloat(ctx context.Context, key string, fallback float64) float64 {
	raw := s.Get(ctx, key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		s.log.Warn("settings value is not numeric, using fallback",
			zap.String("key", key),
			zap.String("value", raw),
		)
		return fallback
	}
	return value
}
