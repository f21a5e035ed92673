package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/notifications"
	"casaroja/internal/shared/config"
	"casaroja/internal/transport"
	"casaroja/internal/users"
	"casaroja/pkg/logger"
)

var (
	ErrTicketNotFound           = errors.New("ticket not found")
	ErrEventSoldOut             = errors.New("not enough spots available for this event")
	ErrNotTicketOwner           = errors.New("ticket does not belong to this user")
	ErrTicketNotCancellable     = errors.New("ticket can no longer be cancelled")
	ErrCancellationNotAllowed   = errors.New("event does not allow cancellations")
	ErrCancellationWindowClosed = errors.New("cancellation window has closed")
	ErrInvalidTicketCode        = errors.New("invalid ticket code")
	ErrTicketAlreadyUsed        = errors.New("ticket has already been checked in")
	ErrTicketNotConfirmed       = errors.New("ticket is not confirmed")
)

type Service interface {
	Purchase(ctx context.Context, userID uuid.UUID, userType users.UserType, req PurchaseTicketRequest) (*TicketResponse, error)
	CheckIn(ctx context.Context, staffID uuid.UUID, code string) (*TicketResponse, error)
	Cancel(ctx context.Context, ticketID, userID uuid.UUID, userType users.UserType, reason string) (*TicketResponse, error)
	GetTicketByID(ticketID, userID uuid.UUID, userType users.UserType) (*TicketResponse, error)
	GetMyTickets(userID uuid.UUID, query TicketListQuery) (*PaginatedTickets, error)
}

type service struct {
	repo             Repository
	eventRepo        events.Repository
	eventService     events.Service
	discountService  discounts.Service
	transportService transport.Service
	publisher        notifications.Publisher
	pricing          config.PricingConfig
}

func NewService(
	repo Repository,
	eventRepo events.Repository,
	eventService events.Service,
	discountService discounts.Service,
	transportService transport.Service,
	publisher notifications.Publisher,
	pricing config.PricingConfig,
) Service {
	return &service{
		repo:             repo,
		eventRepo:        eventRepo,
		eventService:     eventService,
		discountService:  discountService,
		transportService: transportService,
		publisher:        publisher,
		pricing:          pricing,
	}
}

func (s *service) Purchase(ctx context.Context, userID uuid.UUID, userType users.UserType, req PurchaseTicketRequest) (*TicketResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	if req.ParticipantCount < 1 {
		return nil, ErrInvalidParticipantCount
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if !event.Status.IsBookable() || time.Now().After(event.StartDatetime) {
		return nil, ErrEventNotBookable
	}

	baseAmount := event.BasePrice.Mul(decimal.NewFromInt(int64(req.ParticipantCount))).Round(2)

	// An invalid or exhausted code never blocks the purchase; the ticket
	// is simply priced without it.
	var discount *discounts.Discount
	discountAmount := decimal.Zero
	if code := strings.TrimSpace(req.DiscountCode); code != "" {
		discount, discountAmount, err = s.discountService.ResolveForPurchase(eventID, userID, userType, code, baseAmount)
		if err != nil {
			if !isDiscountRejection(err) {
				return nil, err
			}
			discount = nil
			discountAmount = decimal.Zero
		}
	}

	quote, err := ComputeQuote(event.BasePrice, discountAmount, s.pricing.FlatTransportRate, req.ParticipantCount, event.RequiresTransport)
	if err != nil {
		return nil, err
	}

	var transportServiceID *uuid.UUID
	if req.NeedsTransport {
		if req.TransportServiceID == "" {
			return nil, errors.New("transport service ID is required when transport is requested")
		}
		parsed, err := uuid.Parse(req.TransportServiceID)
		if err != nil {
			return nil, errors.New("invalid transport service ID")
		}
		transportServiceID = &parsed
	}

	ticketNumber := uuid.New()
	ticket := &Ticket{
		TicketNumber:       ticketNumber,
		QRCode:             fmt.Sprintf("%s:ticket:%s", s.pricing.QRNamespace, ticketNumber),
		EventID:            eventID,
		CustomerID:         userID,
		BasePrice:          quote.BasePrice,
		DiscountAmount:     quote.DiscountAmount,
		TransportFee:       quote.TransportFee,
		TotalPrice:         quote.TotalPrice,
		Currency:           s.pricing.Currency,
		Status:             TicketStatusPending,
		ParticipantsCount:  req.ParticipantCount,
		ParticipantNames:   req.ParticipantNames,
		NeedsTransport:     req.NeedsTransport,
		TransportServiceID: transportServiceID,
	}
	if discount != nil {
		ticket.DiscountID = &discount.ID
	}

	var reservedBooking *transport.PassengerBooking

	// Capacity check and insert run under the event row lock so two
	// concurrent purchases can never both take the last spots.
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		locked, err := s.eventRepo.GetByIDForUpdate(tx, eventID)
		if err != nil {
			return fmt.Errorf("failed to lock event: %w", err)
		}

		if !locked.Status.IsBookable() {
			return ErrEventNotBookable
		}

		sold, err := s.eventRepo.SoldTicketCountTx(tx, eventID)
		if err != nil {
			return fmt.Errorf("failed to count sold tickets: %w", err)
		}

		available := locked.MaxParticipants - int(sold)
		if available < req.ParticipantCount {
			return ErrEventSoldOut
		}

		if err := s.repo.Create(tx, ticket); err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		if transportServiceID != nil {
			reservedBooking, err = s.transportService.Reserve(tx, *transportServiceID, userID, ticket.ID, req.ParticipantCount, req.PickupLocation)
			if err != nil {
				return err
			}
		}

		if available == req.ParticipantCount {
			return tx.Model(&events.Event{}).
				Where("id = ?", eventID).
				Update("status", events.EventStatusSoldOut).Error
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.eventService.InvalidateEventCache(ctx, eventID)

	logger.GetDefault().LogTicketPurchased(ctx, ticket.ID.String(), eventID.String(), userID.String(), ticket.TotalPrice.String())

	if reservedBooking != nil {
		_ = s.publisher.Publish(ctx, notifications.EventTransportReserved, ticket.ID.String(), map[string]interface{}{
			"booking_id": reservedBooking.ID.String(),
			"service_id": reservedBooking.ServiceID.String(),
			"ticket_id":  ticket.ID.String(),
			"seat_count": reservedBooking.SeatCount,
		})
		logger.GetDefault().LogTransportReserved(ctx, reservedBooking.ID.String(), reservedBooking.ServiceID.String(), ticket.ID.String())
	}

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) CheckIn(ctx context.Context, staffID uuid.UUID, code string) (*TicketResponse, error) {
	ticketNumber, err := parseTicketCode(code)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.GetByTicketNumber(ticketNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if ticket.Status == TicketStatusUsed {
		return nil, ErrTicketAlreadyUsed
	}
	if !ticket.Status.CanCheckIn() {
		return nil, ErrTicketNotConfirmed
	}

	now := time.Now()
	updated, err := s.repo.Update(ticket.ID, map[string]interface{}{
		"status":        TicketStatusUsed,
		"checked_in_at": now,
		"checked_in_by": staffID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) Cancel(ctx context.Context, ticketID, userID uuid.UUID, userType users.UserType, reason string) (*TicketResponse, error) {
	ticket, err := s.repo.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if ticket.CustomerID != userID && userType != users.TypeManager {
		return nil, ErrNotTicketOwner
	}

	if !ticket.Status.CanCancel() {
		return nil, ErrTicketNotCancellable
	}

	event, err := s.eventRepo.GetByID(ticket.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if !event.AllowsCancellation {
		return nil, ErrCancellationNotAllowed
	}

	deadline := event.StartDatetime.Add(-time.Duration(event.CancellationHours) * time.Hour)
	if time.Now().After(deadline) {
		return nil, ErrCancellationWindowClosed
	}

	// Paid tickets get their full price back; pending ones were never charged
	refundAmount := decimal.Zero
	if ticket.Status == TicketStatusConfirmed {
		refundAmount = ticket.TotalPrice
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, ticket.ID, map[string]interface{}{"status": TicketStatusCancelled}); err != nil {
			return fmt.Errorf("failed to cancel ticket: %w", err)
		}

		if err := s.transportService.Release(tx, ticket.ID); err != nil {
			return fmt.Errorf("failed to release transport seats: %w", err)
		}

		cancellation := &Cancellation{
			TicketID:     ticket.ID,
			Reason:       strings.TrimSpace(reason),
			RefundAmount: refundAmount,
			CancelledBy:  userID,
		}
		if err := s.repo.CreateCancellation(tx, cancellation); err != nil {
			return fmt.Errorf("failed to record cancellation: %w", err)
		}

		// The freed spots reopen a sold out event
		if event.Status == events.EventStatusSoldOut {
			return tx.Model(&events.Event{}).
				Where("id = ? AND status = ?", event.ID, events.EventStatusSoldOut).
				Update("status", events.EventStatusPublished).Error
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.eventService.InvalidateEventCache(ctx, ticket.EventID)

	logger.GetDefault().LogTicketCancelled(ctx, ticket.ID.String(), ticket.EventID.String(), userID.String())

	_ = s.publisher.Publish(ctx, notifications.EventTicketCancelled, ticket.ID.String(), map[string]interface{}{
		"ticket_id":     ticket.ID.String(),
		"event_id":      ticket.EventID.String(),
		"customer_id":   ticket.CustomerID.String(),
		"refund_amount": refundAmount.String(),
	})

	updated, err := s.repo.GetByID(ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload ticket: %w", err)
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) GetTicketByID(ticketID, userID uuid.UUID, userType users.UserType) (*TicketResponse, error) {
	ticket, err := s.repo.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if ticket.CustomerID != userID && userType != users.TypeManager {
		return nil, ErrNotTicketOwner
	}

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) GetMyTickets(userID uuid.UUID, query TicketListQuery) (*PaginatedTickets, error) {
	ticketList, totalCount, err := s.repo.GetByUser(userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]TicketResponse, len(ticketList))
	for i, ticket := range ticketList {
		responses[i] = ticket.ToResponse()
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedTickets{
		Tickets:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// parseTicketCode accepts either the full scannable payload
// ("<namespace>:ticket:<uuid>") or the bare ticket number
func parseTicketCode(code string) (uuid.UUID, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return uuid.Nil, ErrInvalidTicketCode
	}

	if idx := strings.LastIndex(code, ":"); idx >= 0 {
		code = code[idx+1:]
	}

	ticketNumber, err := uuid.Parse(code)
	if err != nil {
		return uuid.Nil, ErrInvalidTicketCode
	}

	return ticketNumber, nil
}

func isDiscountRejection(err error) bool {
	for _, rejection := range []error{
		discounts.ErrDiscountNotFound,
		discounts.ErrDiscountInactive,
		discounts.ErrDiscountNotStarted,
		discounts.ErrDiscountExpired,
		discounts.ErrDiscountExhausted,
		discounts.ErrDiscountUserLimit,
		discounts.ErrDiscountMinimumNotMet,
		discounts.ErrDiscountUserTypeBlocked,
		discounts.ErrDiscountWrongEvent,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}
