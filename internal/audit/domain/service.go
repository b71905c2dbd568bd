package domain

import "context"

// Entry is the payload for one activity-log write.
type Entry struct {
	Action     string
	ActorID    *string
	TargetType string
	TargetID   *string
	Details    map[string]any
}

// Service records and reads the audit trail. Record is fire-and-forget: a
// sink failure is logged but never surfaced, so an audit outage cannot fail
// the operation being audited.
type Service interface {
	Record(ctx context.Context, entry Entry)
	ListByTarget(ctx context.Context, targetID string, limit int) ([]ActivityLog, error)
}
