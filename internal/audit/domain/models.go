// Package domain contains the activity-log model and service contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ActivityLog is one audit-trail entry for an admin or system action.
type ActivityLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	Action     string            `gorm:"type:text;not null;index" json:"action"`
	ActorID    *string           `gorm:"type:text" json:"actor_id,omitempty"`
	TargetType string            `gorm:"type:text;not null" json:"target_type"`
	TargetID   *string           `gorm:"type:text;index" json:"target_id,omitempty"`
	Details    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"details"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ActivityLog) TableName() string { return "activity_logs" }
