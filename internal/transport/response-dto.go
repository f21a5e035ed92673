package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransportServiceResponse struct {
	ID                 string          `json:"id"`
	EventID            string          `json:"event_id"`
	ProviderID         string          `json:"provider_id"`
	DriverName         string          `json:"driver_name"`
	VehicleDescription string          `json:"vehicle_description"`
	DepartureLocation  string          `json:"departure_location"`
	DepartureTime      time.Time       `json:"departure_time"`
	ArrivalLocation    string          `json:"arrival_location"`
	MaxPassengers      int             `json:"max_passengers"`
	CurrentPassengers  int             `json:"current_passengers"`
	AvailableSeats     int             `json:"available_seats"`
	PricePerPassenger  decimal.Decimal `json:"price_per_passenger"`
	Status             ServiceStatus   `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type PassengerBookingResponse struct {
	ID             string        `json:"id"`
	ServiceID      string        `json:"service_id"`
	PassengerID    string        `json:"passenger_id"`
	TicketID       string        `json:"ticket_id"`
	SeatCount      int           `json:"seat_count"`
	PickupLocation string        `json:"pickup_location"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}
