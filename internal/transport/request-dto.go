package transport

import "time"

type CreateTransportServiceRequest struct {
	EventID            string    `json:"event_id" binding:"required,uuid"`
	DriverName         string    `json:"driver_name" binding:"omitempty,max=150"`
	VehicleDescription string    `json:"vehicle_description" binding:"omitempty,max=200"`
	DepartureLocation  string    `json:"departure_location" binding:"required,min=3,max=300"`
	DepartureTime      time.Time `json:"departure_time" binding:"required"`
	ArrivalLocation    string    `json:"arrival_location" binding:"omitempty,max=300"`
	MaxPassengers      int       `json:"max_passengers" binding:"required,min=1,max=500"`
	PricePerPassenger  string    `json:"price_per_passenger"`
}

type UpdateTransportServiceRequest struct {
	DriverName         *string    `json:"driver_name" binding:"omitempty,max=150"`
	VehicleDescription *string    `json:"vehicle_description" binding:"omitempty,max=200"`
	DepartureLocation  *string    `json:"departure_location" binding:"omitempty,min=3,max=300"`
	DepartureTime      *time.Time `json:"departure_time"`
	ArrivalLocation    *string    `json:"arrival_location" binding:"omitempty,max=300"`
	MaxPassengers      *int       `json:"max_passengers" binding:"omitempty,min=1,max=500"`
	PricePerPassenger  *string    `json:"price_per_passenger"`
	Status             *string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}
