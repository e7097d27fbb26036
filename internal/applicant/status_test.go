package applicant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryTransitionTargetIsInVocabulary(t *testing.T) {
	for _, status := range Statuses() {
		for _, next := range NextStatuses(status) {
			assert.True(t, IsValidStatus(next.To), "transition %s -> %s leaves the vocabulary", status, next.To)
			assert.NotEmpty(t, next.Label)
		}
	}
}

func TestTerminalStatusesExposeNoActions(t *testing.T) {
	for _, status := range []string{StatusHired, StatusRejected, StatusWithdrawn} {
		assert.True(t, IsTerminal(status), "%s should be terminal", status)
		assert.Empty(t, NextStatuses(status))
	}
	for _, status := range []string{StatusPending, StatusReviewing, StatusInterviewed, StatusOffered} {
		assert.False(t, IsTerminal(status), "%s should not be terminal", status)
		assert.NotEmpty(t, NextStatuses(status))
	}
}

func TestOfferedOnlyLeadsToHired(t *testing.T) {
	next := NextStatuses(StatusOffered)
	assert.Len(t, next, 1)
	assert.Equal(t, StatusHired, next[0].To)
	assert.False(t, CanTransition(StatusOffered, StatusRejected))
}

func TestUnknownStatus(t *testing.T) {
	assert.False(t, IsValidStatus("archived"))
	assert.False(t, IsTerminal("archived"))
	assert.Empty(t, NextStatuses("archived"))
	assert.False(t, CanTransition("archived", StatusHired))
}

func TestNextStatusesReturnsACopy(t *testing.T) {
	first := NextStatuses(StatusPending)
	first[0].To = "mutated"
	assert.Equal(t, StatusReviewing, NextStatuses(StatusPending)[0].To)
}
