// Package domain contains the quote aggregate: the quote record, its line
// items, the cached pricing results, and the lifecycle state machine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Quote is a priced proposal for a certified-translation job.
type Quote struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerEmail  string        `gorm:"type:text" json:"customer_email,omitempty"`
	QuoteState     QuoteState    `gorm:"type:text;not null;default:'draft';index" json:"quote_state"`
	LocationID     *snowflake.ID `gorm:"index" json:"location_id,omitempty"`
	StateChangedAt *time.Time    `gorm:"" json:"state_changed_at,omitempty"`
	StateChangedBy *string       `gorm:"type:text" json:"state_changed_by,omitempty"`
	LastEditedBy   *string       `gorm:"type:text" json:"last_edited_by,omitempty"`
	LastEditedAt   *time.Time    `gorm:"" json:"last_edited_at,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Quote) TableName() string { return "quotes" }

// Line item provenance.
const (
	LineItemSourceManual    = "manual"
	LineItemSourceExtracted = "extracted"
)

// LineItem is one billable document or service within a quote.
type LineItem struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	QuoteID             snowflake.ID `gorm:"not null;index" json:"quote_id"`
	DocumentName        string       `gorm:"type:text" json:"document_name,omitempty"`
	BillablePages       *float64     `gorm:"" json:"billable_pages"`
	UnitRate            *float64     `gorm:"" json:"unit_rate"`
	UnitRateOverride    *float64     `gorm:"" json:"unit_rate_override,omitempty"`
	OverrideReason      *string      `gorm:"type:text" json:"override_reason,omitempty"`
	CertificationType   *string      `gorm:"type:text" json:"certification_type,omitempty"`
	CertificationAmount *float64     `gorm:"" json:"certification_amount,omitempty"`
	SourceLanguage      *string      `gorm:"type:text" json:"source_language,omitempty"`
	TargetLanguage      *string      `gorm:"type:text" json:"target_language,omitempty"`
	LineTotal           float64      `gorm:"not null;default:0" json:"line_total"`
	Source              string       `gorm:"type:text;not null;default:'extracted'" json:"source"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "quote_line_items" }

// EffectiveRate is the override when present, otherwise the unit rate.
func (l LineItem) EffectiveRate() float64 {
	if l.UnitRateOverride != nil {
		return *l.UnitRateOverride
	}
	if l.UnitRate != nil {
		return *l.UnitRate
	}
	return 0
}

// ComputeTotal recomputes the line total from pages, effective rate and
// certification amount.
func (l LineItem) ComputeTotal() float64 {
	pages := 0.0
	if l.BillablePages != nil {
		pages = *l.BillablePages
	}
	total := pages * l.EffectiveRate()
	if l.CertificationAmount != nil {
		total += *l.CertificationAmount
	}
	return total
}

// QuoteResults caches the priced totals and derived delivery/expiry fields
// for a quote. Exactly one row exists per quote.
type QuoteResults struct {
	QuoteID               snowflake.ID  `gorm:"primaryKey;column:quote_id" json:"quote_id"`
	Subtotal              float64       `gorm:"not null;default:0" json:"subtotal"`
	Tax                   float64       `gorm:"not null;default:0" json:"tax"`
	Total                 float64       `gorm:"not null;default:0" json:"total"`
	ComputedAt            *time.Time    `gorm:"" json:"computed_at,omitempty"`
	EstimatedDeliveryDate *time.Time    `gorm:"type:date" json:"estimated_delivery_date,omitempty"`
	DeliveryEstimateText  *string       `gorm:"type:text" json:"delivery_estimate_text,omitempty"`
	QuoteExpiresAt        *time.Time    `gorm:"" json:"quote_expires_at,omitempty"`
	LocationID            *snowflake.ID `gorm:"" json:"location_id,omitempty"`
	UpdatedAt             time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (QuoteResults) TableName() string { return "quote_results" }
