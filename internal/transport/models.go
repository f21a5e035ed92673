package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceStatus string

const (
	ServiceStatusScheduled ServiceStatus = "scheduled"
	ServiceStatusCompleted ServiceStatus = "completed"
	ServiceStatusCancelled ServiceStatus = "cancelled"
)

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// TransportService is a shared ride to an event's venue
type TransportService struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	ProviderID uuid.UUID `json:"provider_id" gorm:"type:uuid;not null;index"`

	DriverName         string `json:"driver_name" gorm:"size:150"`
	VehicleDescription string `json:"vehicle_description" gorm:"size:200"`

	DepartureLocation string    `json:"departure_location" gorm:"not null;size:300"`
	DepartureTime     time.Time `json:"departure_time" gorm:"not null"`
	ArrivalLocation   string    `json:"arrival_location" gorm:"size:300"`

	MaxPassengers     int `json:"max_passengers" gorm:"not null;check:max_passengers > 0"`
	CurrentPassengers int `json:"current_passengers" gorm:"default:0"`

	PricePerPassenger decimal.Decimal `json:"price_per_passenger" gorm:"type:numeric(12,2);default:0"`

	Status    ServiceStatus `json:"status" gorm:"type:varchar(20);default:'scheduled'"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// PassengerBooking is one reserved seat, tied to exactly one ticket
type PassengerBooking struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ServiceID      uuid.UUID     `json:"service_id" gorm:"type:uuid;not null;index"`
	PassengerID    uuid.UUID     `json:"passenger_id" gorm:"type:uuid;not null;index"`
	TicketID       uuid.UUID     `json:"ticket_id" gorm:"type:uuid;not null"`
	SeatCount      int           `json:"seat_count" gorm:"default:1"`
	PickupLocation string        `json:"pickup_location" gorm:"size:300"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(20);default:'reserved'"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// CanAccommodate reports whether seatCount more passengers fit in the vehicle
func (t *TransportService) CanAccommodate(seatCount int) bool {
	return t.CurrentPassengers+seatCount <= t.MaxPassengers
}

// AvailableSeats reports how many passengers the vehicle can still take
func (t *TransportService) AvailableSeats() int {
	seats := t.MaxPassengers - t.CurrentPassengers
	if seats < 0 {
		return 0
	}
	return seats
}

func (t *TransportService) ToResponse() TransportServiceResponse {
	return TransportServiceResponse{
		ID:                 t.ID.String(),
		EventID:            t.EventID.String(),
		ProviderID:         t.ProviderID.String(),
		DriverName:         t.DriverName,
		VehicleDescription: t.VehicleDescription,
		DepartureLocation:  t.DepartureLocation,
		DepartureTime:      t.DepartureTime,
		ArrivalLocation:    t.ArrivalLocation,
		MaxPassengers:      t.MaxPassengers,
		CurrentPassengers:  t.CurrentPassengers,
		AvailableSeats:     t.AvailableSeats(),
		PricePerPassenger:  t.PricePerPassenger,
		Status:             t.Status,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (TransportService) TableName() string {
	return "transport_services"
}

func (PassengerBooking) TableName() string {
	return "passenger_bookings"
}
