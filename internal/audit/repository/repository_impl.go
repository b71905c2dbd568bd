package repository

import (
	"context"
	"strings"

	"github.com/linguasign/certiq/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.ActivityLog) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListByTarget(ctx context.Context, db *gorm.DB, targetID string, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 || limit > 250 {
		limit = 50
	}

	stmt := db.WithContext(ctx).Model(&domain.ActivityLog{})
	if id := strings.TrimSpace(targetID); id != "" {
		stmt = stmt.Where("target_id = ?", id)
	}

	var logs []domain.ActivityLog
	err := stmt.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
