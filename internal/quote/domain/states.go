package domain

import (
	"fmt"
	"strings"
)

// QuoteState is a quote lifecycle state.
type QuoteState string

const (
	StateDraft        QuoteState = "draft"
	StatePending      QuoteState = "pending"
	StateHITLRequired QuoteState = "hitl_required"
	StateUnderReview  QuoteState = "under_review"
	StateReady        QuoteState = "ready"
	StateSent         QuoteState = "sent"
	StateAccepted     QuoteState = "accepted"
	StateExpired      QuoteState = "expired"
	StateConverted    QuoteState = "converted"
	StateAbandoned    QuoteState = "abandoned"
	StateOpen         QuoteState = "open"
	StateArchived     QuoteState = "archived"
)

// primaryFlow is the ordered review pipeline. Transitions may only move to
// an equal-or-later position, with the single exception of sending a ready
// quote back to review.
var primaryFlow = []QuoteState{StateDraft, StateUnderReview, StateReady, StateSent}

// adminStates are always reachable regardless of the current state; they
// represent admin-driven overrides outside the review pipeline.
var adminStates = map[QuoteState]bool{
	StatePending:      true,
	StateHITLRequired: true,
	StateAccepted:     true,
	StateExpired:      true,
	StateConverted:    true,
	StateAbandoned:    true,
	StateOpen:         true,
	StateArchived:     true,
}

var knownStates = map[QuoteState]bool{
	StateDraft:        true,
	StatePending:      true,
	StateHITLRequired: true,
	StateUnderReview:  true,
	StateReady:        true,
	StateSent:         true,
	StateAccepted:     true,
	StateExpired:      true,
	StateConverted:    true,
	StateAbandoned:    true,
	StateOpen:         true,
	StateArchived:     true,
}

// lockedStates freeze quote content: no line-item edits, no repricing.
var lockedStates = map[QuoteState]bool{
	StateSent:      true,
	StateAccepted:  true,
	StateConverted: true,
}

// NormalizeState lowercases and trims a raw state string.
func NormalizeState(raw string) QuoteState {
	return QuoteState(strings.ToLower(strings.TrimSpace(raw)))
}

// IsKnownState reports whether raw names a recognized lifecycle state.
func IsKnownState(raw string) bool {
	return knownStates[NormalizeState(raw)]
}

// IsLocked reports whether a quote in the given state rejects content
// mutations. This is the single lock predicate used by every mutating path.
func IsLocked(state QuoteState) bool {
	return lockedStates[NormalizeState(string(state))]
}

func flowIndex(state QuoteState) int {
	for i, s := range primaryFlow {
		if s == state {
			return i
		}
	}
	return -1
}

// CanTransition validates a requested lifecycle transition.
func CanTransition(from, to QuoteState) error {
	from = NormalizeState(string(from))
	to = NormalizeState(string(to))

	if !knownStates[to] {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, to)
	}

	if from == to {
		return nil
	}

	if adminStates[to] {
		return nil
	}

	// ready -> under_review returns a quote to review after it reached
	// ready; the only backward move in the pipeline.
	if from == StateReady && to == StateUnderReview {
		return nil
	}

	if flowIndex(from) <= flowIndex(to) {
		return nil
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
