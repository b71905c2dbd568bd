package domain

import "errors"

var (
	ErrQuoteNotFound     = errors.New("quote_not_found")
	ErrLineItemNotFound  = errors.New("line_item_not_found")
	ErrQuoteLocked       = errors.New("quote_locked")
	ErrInvalidTransition = errors.New("invalid transition")
)

// FieldError reports a validation failure on a named request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
