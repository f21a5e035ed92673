package transport

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTransportNotFound = errors.New("transport service not found")
	ErrTransportFull     = errors.New("transport service is full")
	ErrSeatNotReserved   = errors.New("no transport seat reserved for this ticket")
)

type Repository interface {
	Create(service *TransportService) error
	GetByID(id uuid.UUID) (*TransportService, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*TransportService, error)
	GetByEvent(eventID uuid.UUID) ([]TransportService, error)
	GetByProvider(providerID uuid.UUID) ([]TransportService, error)
	GetBookingByTicket(ticketID uuid.UUID) (*PassengerBooking, error)
	GetBookingsByService(serviceID uuid.UUID) ([]PassengerBooking, error)

	// ReserveTx locks the service row, verifies capacity for seatCount
	// passengers, creates the booking and increments current_passengers —
	// all inside tx
	ReserveTx(tx *gorm.DB, serviceID, passengerID, ticketID uuid.UUID, seatCount int, pickupLocation string) (*PassengerBooking, error)

	// ReleaseByTicketTx cancels the ticket's booking and frees its seats inside tx
	ReleaseByTicketTx(tx *gorm.DB, ticketID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(service *TransportService) error {
	return r.db.Create(service).Error
}

func (r *repository) GetByID(id uuid.UUID) (*TransportService, error) {
	var service TransportService
	err := r.db.Where("id = ?", id).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*TransportService, error) {
	var service TransportService

	if err := r.db.Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&service).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *repository) GetByEvent(eventID uuid.UUID) ([]TransportService, error) {
	var services []TransportService
	err := r.db.Where("event_id = ?", eventID).Order("departure_time asc").Find(&services).Error
	return services, err
}

func (r *repository) GetByProvider(providerID uuid.UUID) ([]TransportService, error) {
	var services []TransportService
	err := r.db.Where("provider_id = ?", providerID).Order("departure_time desc").Find(&services).Error
	return services, err
}

func (r *repository) GetBookingByTicket(ticketID uuid.UUID) (*PassengerBooking, error) {
	var booking PassengerBooking
	err := r.db.Where("ticket_id = ? AND status = ?", ticketID, BookingStatusReserved).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingsByService(serviceID uuid.UUID) ([]PassengerBooking, error) {
	var bookings []PassengerBooking
	err := r.db.Where("service_id = ? AND status = ?", serviceID, BookingStatusReserved).
		Order("created_at asc").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) ReserveTx(tx *gorm.DB, serviceID, passengerID, ticketID uuid.UUID, seatCount int, pickupLocation string) (*PassengerBooking, error) {
	var service TransportService

	// The capacity check and increment must run under the row lock
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", serviceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransportNotFound
		}
		return nil, err
	}

	if service.Status != ServiceStatusScheduled {
		return nil, ErrTransportNotFound
	}

	if !service.CanAccommodate(seatCount) {
		return nil, ErrTransportFull
	}

	booking := &PassengerBooking{
		ServiceID:      serviceID,
		PassengerID:    passengerID,
		TicketID:       ticketID,
		SeatCount:      seatCount,
		PickupLocation: pickupLocation,
		Status:         BookingStatusReserved,
	}
	if err := tx.Create(booking).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&service).
		Update("current_passengers", gorm.Expr("current_passengers + ?", seatCount)).Error; err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *repository) ReleaseByTicketTx(tx *gorm.DB, ticketID uuid.UUID) error {
	var booking PassengerBooking

	err := tx.Where("ticket_id = ? AND status = ?", ticketID, BookingStatusReserved).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeatNotReserved
		}
		return err
	}

	// Lock the service row before decrementing
	var service TransportService
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", booking.ServiceID).
		First(&service).Error; err != nil {
		return err
	}

	if err := tx.Model(&booking).Update("status", BookingStatusCancelled).Error; err != nil {
		return err
	}

	return tx.Model(&service).
		Update("current_passengers", gorm.Expr("GREATEST(current_passengers - ?, 0)", booking.SeatCount)).Error
}
