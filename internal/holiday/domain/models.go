// Package domain contains persistence models for fulfillment-location
// holiday calendars.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Holiday is a single non-working date for a fulfillment location.
type Holiday struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	LocationID  snowflake.ID `gorm:"not null;index" json:"location_id"`
	HolidayDate time.Time    `gorm:"type:date;not null;index" json:"holiday_date"`
	Name        string       `gorm:"type:text" json:"name,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Holiday) TableName() string { return "holidays" }
