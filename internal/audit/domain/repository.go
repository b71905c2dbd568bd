package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *ActivityLog) error
	ListByTarget(ctx context.Context, db *gorm.DB, targetID string, limit int) ([]ActivityLog, error)
}
