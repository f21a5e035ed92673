package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"casaroja/internal/shared/constants"
	"casaroja/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service interface {
	CreateService(providerID uuid.UUID, req CreateTransportServiceRequest) (*TransportServiceResponse, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*TransportServiceResponse, error)
	UpdateService(id uuid.UUID, providerID uuid.UUID, req UpdateTransportServiceRequest) (*TransportServiceResponse, error)
	GetServicesByEvent(ctx context.Context, eventID uuid.UUID) ([]TransportServiceResponse, error)
	GetServicesByProvider(providerID uuid.UUID) ([]TransportServiceResponse, error)
	GetServicePassengers(serviceID uuid.UUID) ([]PassengerBookingResponse, error)

	// Reserve books seats inside the caller's transaction; used by the
	// ticket purchase flow so the seat and the ticket commit together
	Reserve(tx *gorm.DB, serviceID, passengerID, ticketID uuid.UUID, seatCount int, pickupLocation string) (*PassengerBooking, error)

	// Release frees the ticket's reserved seats inside the caller's
	// transaction. Missing bookings are not an error for the caller.
	Release(tx *gorm.DB, ticketID uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) CreateService(providerID uuid.UUID, req CreateTransportServiceRequest) (*TransportServiceResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	pricePerPassenger := decimal.Zero
	if req.PricePerPassenger != "" {
		pricePerPassenger, err = decimal.NewFromString(req.PricePerPassenger)
		if err != nil || pricePerPassenger.IsNegative() {
			return nil, errors.New("invalid price per passenger")
		}
	}

	transportService := &TransportService{
		EventID:            eventID,
		ProviderID:         providerID,
		DriverName:         strings.TrimSpace(req.DriverName),
		VehicleDescription: strings.TrimSpace(req.VehicleDescription),
		DepartureLocation:  strings.TrimSpace(req.DepartureLocation),
		DepartureTime:      req.DepartureTime,
		ArrivalLocation:    strings.TrimSpace(req.ArrivalLocation),
		MaxPassengers:      req.MaxPassengers,
		PricePerPassenger:  pricePerPassenger,
		Status:             ServiceStatusScheduled,
	}

	if err := s.repo.Create(transportService); err != nil {
		return nil, fmt.Errorf("failed to create transport service: %w", err)
	}

	s.invalidateCache(eventID)

	response := transportService.ToResponse()
	return &response, nil
}

func (s *service) GetServiceByID(ctx context.Context, id uuid.UUID) (*TransportServiceResponse, error) {
	cacheKey := constants.BuildTransportSeatsKey(id.String())

	var cached TransportServiceResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	transportService, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to get transport service: %w", err)
	}

	response := transportService.ToResponse()

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, constants.TTL_TRANSPORT_SEATS)
	}

	return &response, nil
}

func (s *service) UpdateService(id uuid.UUID, providerID uuid.UUID, req UpdateTransportServiceRequest) (*TransportServiceResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to get transport service: %w", err)
	}

	if current.ProviderID != providerID {
		return nil, errors.New("transport service does not belong to this provider")
	}

	updates := make(map[string]interface{})

	if req.DriverName != nil {
		updates["driver_name"] = strings.TrimSpace(*req.DriverName)
	}
	if req.VehicleDescription != nil {
		updates["vehicle_description"] = strings.TrimSpace(*req.VehicleDescription)
	}
	if req.DepartureLocation != nil {
		updates["departure_location"] = strings.TrimSpace(*req.DepartureLocation)
	}
	if req.DepartureTime != nil {
		updates["departure_time"] = *req.DepartureTime
	}
	if req.ArrivalLocation != nil {
		updates["arrival_location"] = strings.TrimSpace(*req.ArrivalLocation)
	}
	if req.MaxPassengers != nil {
		if *req.MaxPassengers < current.CurrentPassengers {
			return nil, fmt.Errorf("cannot reduce capacity below %d reserved passengers", current.CurrentPassengers)
		}
		updates["max_passengers"] = *req.MaxPassengers
	}
	if req.PricePerPassenger != nil {
		price, err := decimal.NewFromString(*req.PricePerPassenger)
		if err != nil || price.IsNegative() {
			return nil, errors.New("invalid price per passenger")
		}
		updates["price_per_passenger"] = price
	}
	if req.Status != nil {
		updates["status"] = ServiceStatus(*req.Status)
	}

	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update transport service: %w", err)
	}

	s.invalidateCache(current.EventID)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) GetServicesByEvent(ctx context.Context, eventID uuid.UUID) ([]TransportServiceResponse, error) {
	cacheKey := constants.BuildTransportByEventKey(eventID.String())

	var cached []TransportServiceResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	services, err := s.repo.GetByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transport services: %w", err)
	}

	responses := make([]TransportServiceResponse, len(services))
	for i, transportService := range services {
		responses[i] = transportService.ToResponse()
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, responses, constants.TTL_TRANSPORT_BY_EVENT)
	}

	return responses, nil
}

func (s *service) GetServicesByProvider(providerID uuid.UUID) ([]TransportServiceResponse, error) {
	services, err := s.repo.GetByProvider(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider services: %w", err)
	}

	responses := make([]TransportServiceResponse, len(services))
	for i, transportService := range services {
		responses[i] = transportService.ToResponse()
	}

	return responses, nil
}

func (s *service) GetServicePassengers(serviceID uuid.UUID) ([]PassengerBookingResponse, error) {
	if _, err := s.repo.GetByID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to get transport service: %w", err)
	}

	bookings, err := s.repo.GetBookingsByService(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get passenger bookings: %w", err)
	}

	responses := make([]PassengerBookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = PassengerBookingResponse{
			ID:             booking.ID.String(),
			ServiceID:      booking.ServiceID.String(),
			PassengerID:    booking.PassengerID.String(),
			TicketID:       booking.TicketID.String(),
			SeatCount:      booking.SeatCount,
			PickupLocation: booking.PickupLocation,
			Status:         booking.Status,
			CreatedAt:      booking.CreatedAt,
		}
	}

	return responses, nil
}

func (s *service) Reserve(tx *gorm.DB, serviceID, passengerID, ticketID uuid.UUID, seatCount int, pickupLocation string) (*PassengerBooking, error) {
	if seatCount < 1 {
		return nil, errors.New("seat count must be at least 1")
	}

	booking, err := s.repo.ReserveTx(tx, serviceID, passengerID, ticketID, seatCount, pickupLocation)
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *service) Release(tx *gorm.DB, ticketID uuid.UUID) error {
	err := s.repo.ReleaseByTicketTx(tx, ticketID)
	if err != nil && !errors.Is(err, ErrSeatNotReserved) {
		return err
	}
	return nil
}

func (s *service) invalidateCache(eventID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(context.Background(), constants.PATTERN_INVALIDATE_TRANSPORT)
	_ = s.cache.Delete(context.Background(), constants.BuildTransportByEventKey(eventID.String()))
}
