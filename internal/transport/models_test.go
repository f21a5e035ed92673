package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSeats(t *testing.T) {
	service := TransportService{MaxPassengers: 30, CurrentPassengers: 12}
	assert.Equal(t, 18, service.AvailableSeats())

	service.CurrentPassengers = 30
	assert.Equal(t, 0, service.AvailableSeats())

	// An overbooked row must not report negative availability
	service.CurrentPassengers = 31
	assert.Equal(t, 0, service.AvailableSeats())
}

func TestCanAccommodate(t *testing.T) {
	service := TransportService{MaxPassengers: 20, CurrentPassengers: 19}
	assert.True(t, service.CanAccommodate(1))
	assert.False(t, service.CanAccommodate(2))

	// A full vehicle takes no one, even a single passenger
	service.CurrentPassengers = 20
	assert.False(t, service.CanAccommodate(1))

	service.CurrentPassengers = 0
	assert.True(t, service.CanAccommodate(20))
	assert.False(t, service.CanAccommodate(21))
}
