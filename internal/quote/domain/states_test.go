package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_PrimaryFlow(t *testing.T) {
	assert.NoError(t, CanTransition(StateDraft, StateUnderReview))
	assert.NoError(t, CanTransition(StateDraft, StateReady))
	assert.NoError(t, CanTransition(StateDraft, StateSent))
	assert.NoError(t, CanTransition(StateUnderReview, StateReady))
	assert.NoError(t, CanTransition(StateReady, StateSent))
}

func TestCanTransition_NoBackwardJumps(t *testing.T) {
	assert.Error(t, CanTransition(StateSent, StateDraft))
	assert.Error(t, CanTransition(StateSent, StateUnderReview))
	assert.Error(t, CanTransition(StateSent, StateReady))
	assert.Error(t, CanTransition(StateReady, StateDraft))
	assert.Error(t, CanTransition(StateUnderReview, StateDraft))
}

func TestCanTransition_ReadyBackToReview(t *testing.T) {
	// The single backward exception in the review pipeline.
	assert.NoError(t, CanTransition(StateReady, StateUnderReview))
}

func TestCanTransition_NoOp(t *testing.T) {
	assert.NoError(t, CanTransition(StateSent, StateSent))
	assert.NoError(t, CanTransition(StateDraft, StateDraft))
}

func TestCanTransition_AdminTargetsAlwaysAllowed(t *testing.T) {
	all := []QuoteState{
		StateDraft, StatePending, StateHITLRequired, StateUnderReview,
		StateReady, StateSent, StateAccepted, StateExpired,
		StateConverted, StateAbandoned, StateOpen, StateArchived,
	}
	admin := []QuoteState{
		StatePending, StateHITLRequired, StateAccepted, StateExpired,
		StateConverted, StateAbandoned, StateOpen, StateArchived,
	}

	for _, from := range all {
		for _, to := range admin {
			assert.NoError(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownTargetRejected(t *testing.T) {
	err := CanTransition(StateDraft, QuoteState("finalized"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransition_CaseInsensitive(t *testing.T) {
	assert.NoError(t, CanTransition(QuoteState("READY"), QuoteState("Under_Review")))
	assert.Error(t, CanTransition(QuoteState("SENT"), QuoteState("draft")))
}

func TestIsLocked(t *testing.T) {
	assert.True(t, IsLocked(StateSent))
	assert.True(t, IsLocked(StateAccepted))
	assert.True(t, IsLocked(StateConverted))
	assert.True(t, IsLocked(QuoteState("SENT")))

	assert.False(t, IsLocked(StateDraft))
	assert.False(t, IsLocked(StateReady))
	assert.False(t, IsLocked(StateUnderReview))
	assert.False(t, IsLocked(StateHITLRequired))
	assert.False(t, IsLocked(StateExpired))
}
