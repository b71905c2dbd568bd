// Package domain contains the key/value settings model.
package domain

import "time"

// Setting is a single configuration entry editable from the admin console.
type Setting struct {
	Key       string    `gorm:"type:text;primaryKey;column:key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Setting) TableName() string { return "settings" }

// Keys read by the quote engine.
const (
	KeyDefaultTurnaroundTime = "default_turnaround_time"
	KeyQuoteExpiryDays       = "quote_expiry_days"
	KeyTaxRate               = "tax_rate"
)
