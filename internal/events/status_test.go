package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventStatusCanTransitionTo(t *testing.T) {
	allowed := map[EventStatus][]EventStatus{
		EventStatusDraft:     {EventStatusPublished, EventStatusCancelled},
		EventStatusPublished: {EventStatusSoldOut, EventStatusCancelled, EventStatusCompleted},
		EventStatusSoldOut:   {EventStatusPublished, EventStatusCancelled, EventStatusCompleted},
		EventStatusCancelled: {},
		EventStatusCompleted: {},
	}

	all := []EventStatus{
		EventStatusDraft,
		EventStatusPublished,
		EventStatusSoldOut,
		EventStatusCancelled,
		EventStatusCompleted,
	}

	for from, targets := range allowed {
		allowedSet := make(map[EventStatus]bool, len(targets))
		for _, target := range targets {
			allowedSet[target] = true
		}
		for _, to := range all {
			assert.Equal(t, allowedSet[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestEventStatusPredicates(t *testing.T) {
	assert.True(t, EventStatusPublished.IsBookable())
	assert.False(t, EventStatusDraft.IsBookable())
	assert.False(t, EventStatusSoldOut.IsBookable())

	assert.True(t, EventStatusCancelled.IsTerminal())
	assert.True(t, EventStatusCompleted.IsTerminal())
	assert.False(t, EventStatusPublished.IsTerminal())

	assert.True(t, EventStatusSoldOut.IsValid())
	assert.False(t, EventStatus("archived").IsValid())
}
