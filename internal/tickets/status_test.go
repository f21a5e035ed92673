package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatusHoldsSpot(t *testing.T) {
	assert.True(t, TicketStatusPending.HoldsSpot())
	assert.True(t, TicketStatusConfirmed.HoldsSpot())
	assert.True(t, TicketStatusUsed.HoldsSpot())
	assert.False(t, TicketStatusCancelled.HoldsSpot())
	assert.False(t, TicketStatusRefunded.HoldsSpot())
}

func TestTicketStatusCanCancel(t *testing.T) {
	assert.True(t, TicketStatusPending.CanCancel())
	assert.True(t, TicketStatusConfirmed.CanCancel())
	assert.False(t, TicketStatusUsed.CanCancel())
	assert.False(t, TicketStatusCancelled.CanCancel())
}

func TestTicketStatusCanCheckIn(t *testing.T) {
	assert.True(t, TicketStatusConfirmed.CanCheckIn())
	assert.False(t, TicketStatusPending.CanCheckIn())
	assert.False(t, TicketStatusUsed.CanCheckIn())
}
