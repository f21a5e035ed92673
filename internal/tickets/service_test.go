package tickets

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/notifications"
	"casaroja/internal/shared/config"
	"casaroja/internal/transport"
	"casaroja/internal/users"
)

// ticketStore is the shared in-memory state behind the fake repositories.
// Its mutex is held for the duration of every transaction, standing in for
// the FOR UPDATE lock on the event row.
type ticketStore struct {
	mu            sync.Mutex
	tickets       []*Ticket
	cancellations []*Cancellation
}

type fakeTicketRepo struct {
	Repository
	store *ticketStore
}

func (r *fakeTicketRepo) Transaction(fn func(tx *gorm.DB) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := len(r.store.tickets)
	if err := fn(nil); err != nil {
		r.store.tickets = r.store.tickets[:snapshot]
		return err
	}
	return nil
}

func (r *fakeTicketRepo) Create(tx *gorm.DB, ticket *Ticket) error {
	ticket.ID = uuid.New()
	r.store.tickets = append(r.store.tickets, ticket)
	return nil
}

func (r *fakeTicketRepo) GetByID(id uuid.UUID) (*Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ticket := range r.store.tickets {
		if ticket.ID == id {
			found := *ticket
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) GetByTicketNumber(ticketNumber uuid.UUID) (*Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ticket := range r.store.tickets {
		if ticket.TicketNumber == ticketNumber {
			found := *ticket
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.apply(id, updates)
}

func (r *fakeTicketRepo) UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	_, err := r.apply(id, updates)
	return err
}

func (r *fakeTicketRepo) CreateCancellation(tx *gorm.DB, cancellation *Cancellation) error {
	cancellation.ID = uuid.New()
	r.store.cancellations = append(r.store.cancellations, cancellation)
	return nil
}

func (r *fakeTicketRepo) apply(id uuid.UUID, updates map[string]interface{}) (*Ticket, error) {
	for _, ticket := range r.store.tickets {
		if ticket.ID == id {
			if status, ok := updates["status"].(TicketStatus); ok {
				ticket.Status = status
			}
			found := *ticket
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEventRepo struct {
	events.Repository
	event *events.Event
	store *ticketStore
}

func (r *fakeEventRepo) GetByID(id uuid.UUID) (*events.Event, error) {
	if id != r.event.ID {
		return nil, gorm.ErrRecordNotFound
	}
	found := *r.event
	return &found, nil
}

func (r *fakeEventRepo) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*events.Event, error) {
	return r.GetByID(id)
}

func (r *fakeEventRepo) SoldTicketCountTx(tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	var sum int64
	for _, ticket := range r.store.tickets {
		if ticket.EventID == eventID && ticket.Status.HoldsSpot() {
			sum += int64(ticket.ParticipantsCount)
		}
	}
	return sum, nil
}

type fakeEventService struct {
	events.Service
}

func (s *fakeEventService) InvalidateEventCache(ctx context.Context, eventID uuid.UUID) {}

type fakeDiscountService struct {
	discounts.Service
	discount *discounts.Discount
	amount   decimal.Decimal
	err      error
}

func (s *fakeDiscountService) ResolveForPurchase(eventID, userID uuid.UUID, userType users.UserType, code string, basePrice decimal.Decimal) (*discounts.Discount, decimal.Decimal, error) {
	return s.discount, s.amount, s.err
}

type fakeTransportService struct {
	transport.Service
	released   []uuid.UUID
	reserveErr error
}

func (s *fakeTransportService) Reserve(tx *gorm.DB, serviceID, passengerID, ticketID uuid.UUID, seatCount int, pickupLocation string) (*transport.PassengerBooking, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return &transport.PassengerBooking{
		ID:          uuid.New(),
		ServiceID:   serviceID,
		PassengerID: passengerID,
		TicketID:    ticketID,
		SeatCount:   seatCount,
		Status:      transport.BookingStatusReserved,
	}, nil
}

func (s *fakeTransportService) Release(tx *gorm.DB, ticketID uuid.UUID) error {
	s.released = append(s.released, ticketID)
	return nil
}

type fixture struct {
	service   Service
	store     *ticketStore
	event     *events.Event
	transport *fakeTransportService
}

func newFixture(event *events.Event, discountService discounts.Service) *fixture {
	store := &ticketStore{}
	transportService := &fakeTransportService{}

	if discountService == nil {
		discountService = &fakeDiscountService{err: discounts.ErrDiscountNotFound}
	}

	pricing := config.PricingConfig{
		FlatTransportRate:  decimal.NewFromInt(5000),
		PlatformPercentage: decimal.NewFromInt(15),
		Currency:           "CLP",
		QRNamespace:        "casaroja",
	}

	svc := NewService(
		&fakeTicketRepo{store: store},
		&fakeEventRepo{event: event, store: store},
		&fakeEventService{},
		discountService,
		transportService,
		notifications.NewNoopPublisher(),
		pricing,
	)

	return &fixture{service: svc, store: store, event: event, transport: transportService}
}

func publishedEvent(maxParticipants int, basePrice string) *events.Event {
	price, _ := decimal.NewFromString(basePrice)
	return &events.Event{
		ID:                 uuid.New(),
		Title:              "Noche de Cueca",
		StartDatetime:      time.Now().Add(72 * time.Hour),
		EndDatetime:        time.Now().Add(76 * time.Hour),
		BasePrice:          price,
		MaxParticipants:    maxParticipants,
		Status:             events.EventStatusPublished,
		AllowsCancellation: true,
		CancellationHours:  24,
	}
}

func TestPurchase(t *testing.T) {
	userID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "15000"), nil)

		resp, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 2,
			ParticipantNames: []string{"Rosa", "Pedro"},
		})
		require.NoError(t, err)

		assert.Equal(t, TicketStatusPending, resp.Status)
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(30000)))
		assert.Equal(t, "CLP", resp.Currency)
		assert.Equal(t, "casaroja:ticket:"+resp.TicketNumber, resp.QRCode)
		assert.Len(t, f.store.tickets, 1)
	})

	t.Run("invalid discount code is not fatal", func(t *testing.T) {
		rejecting := &fakeDiscountService{err: discounts.ErrDiscountExpired}
		f := newFixture(publishedEvent(10, "15000"), rejecting)

		resp, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 1,
			DiscountCode:     "EXPIRED",
		})
		require.NoError(t, err)

		assert.Nil(t, resp.DiscountID)
		assert.True(t, resp.DiscountAmount.IsZero())
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("valid discount reduces the total", func(t *testing.T) {
		discount := &discounts.Discount{ID: uuid.New(), Code: "CUECA10"}
		granting := &fakeDiscountService{discount: discount, amount: decimal.NewFromInt(1500)}
		f := newFixture(publishedEvent(10, "15000"), granting)

		resp, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 1,
			DiscountCode:     "CUECA10",
		})
		require.NoError(t, err)

		require.NotNil(t, resp.DiscountID)
		assert.Equal(t, discount.ID.String(), *resp.DiscountID)
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(13500)))
	})

	t.Run("transport fee added when the event requires it", func(t *testing.T) {
		event := publishedEvent(10, "20000")
		event.RequiresTransport = true
		f := newFixture(event, nil)

		resp, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 2,
		})
		require.NoError(t, err)

		assert.True(t, resp.TransportFee.Equal(decimal.NewFromInt(10000)))
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("seat reservation commits with the ticket", func(t *testing.T) {
		event := publishedEvent(10, "20000")
		event.RequiresTransport = true
		f := newFixture(event, nil)
		serviceID := uuid.New()

		resp, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:            f.event.ID.String(),
			ParticipantCount:   2,
			NeedsTransport:     true,
			TransportServiceID: serviceID.String(),
		})
		require.NoError(t, err)

		require.NotNil(t, resp.TransportServiceID)
		assert.Equal(t, serviceID.String(), *resp.TransportServiceID)
	})

	t.Run("full vehicle aborts the whole purchase", func(t *testing.T) {
		event := publishedEvent(10, "20000")
		event.RequiresTransport = true
		f := newFixture(event, nil)
		f.transport.reserveErr = transport.ErrTransportFull

		_, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:            f.event.ID.String(),
			ParticipantCount:   2,
			NeedsTransport:     true,
			TransportServiceID: uuid.New().String(),
		})
		assert.ErrorIs(t, err, transport.ErrTransportFull)

		// The ticket insert rolled back with the failed reservation
		assert.Empty(t, f.store.tickets)
	})

	t.Run("more participants than capacity", func(t *testing.T) {
		f := newFixture(publishedEvent(3, "10000"), nil)

		_, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 4,
		})
		assert.ErrorIs(t, err, ErrEventSoldOut)
		assert.Empty(t, f.store.tickets)
	})

	t.Run("draft event is not bookable", func(t *testing.T) {
		event := publishedEvent(10, "10000")
		event.Status = events.EventStatusDraft
		f := newFixture(event, nil)

		_, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 1,
		})
		assert.ErrorIs(t, err, ErrEventNotBookable)
	})

	t.Run("started event is not bookable", func(t *testing.T) {
		event := publishedEvent(10, "10000")
		event.StartDatetime = time.Now().Add(-time.Hour)
		f := newFixture(event, nil)

		_, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 1,
		})
		assert.ErrorIs(t, err, ErrEventNotBookable)
	})

	t.Run("zero participants rejected", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)

		_, err := f.service.Purchase(context.Background(), userID, users.TypeClient, PurchaseTicketRequest{
			EventID:          f.event.ID.String(),
			ParticipantCount: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidParticipantCount)
	})
}

// Concurrent purchases race for the last spots; the capacity check inside
// the locked transaction must never let the total exceed max_participants.
func TestPurchaseConcurrencyNeverOversells(t *testing.T) {
	f := newFixture(publishedEvent(10, "10000"), nil)

	const buyers = 20
	const seatsEach = 3

	var wg sync.WaitGroup
	errs := make([]error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Purchase(context.Background(), uuid.New(), users.TypeClient, PurchaseTicketRequest{
				EventID:          f.event.ID.String(),
				ParticipantCount: seatsEach,
			})
		}(i)
	}
	wg.Wait()

	var succeeded, soldOut int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrEventSoldOut):
			soldOut++
		}
	}

	var seatsTaken int
	for _, ticket := range f.store.tickets {
		seatsTaken += ticket.ParticipantsCount
	}

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, buyers-3, soldOut)
	assert.Equal(t, 9, seatsTaken)
	assert.LessOrEqual(t, seatsTaken, f.event.MaxParticipants)
}

func TestCheckIn(t *testing.T) {
	staffID := uuid.New()

	seed := func(f *fixture, status TicketStatus) *Ticket {
		ticket := &Ticket{
			ID:                uuid.New(),
			TicketNumber:      uuid.New(),
			EventID:           f.event.ID,
			CustomerID:        uuid.New(),
			Status:            status,
			ParticipantsCount: 1,
		}
		f.store.tickets = append(f.store.tickets, ticket)
		return ticket
	}

	t.Run("confirmed ticket checks in", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusConfirmed)

		resp, err := f.service.CheckIn(context.Background(), staffID, "casaroja:ticket:"+ticket.TicketNumber.String())
		require.NoError(t, err)
		assert.Equal(t, TicketStatusUsed, resp.Status)
	})

	t.Run("second scan is rejected", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusUsed)

		_, err := f.service.CheckIn(context.Background(), staffID, ticket.TicketNumber.String())
		assert.ErrorIs(t, err, ErrTicketAlreadyUsed)
	})

	t.Run("unpaid ticket cannot check in", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusPending)

		_, err := f.service.CheckIn(context.Background(), staffID, ticket.TicketNumber.String())
		assert.ErrorIs(t, err, ErrTicketNotConfirmed)
	})

	t.Run("unknown ticket number", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)

		_, err := f.service.CheckIn(context.Background(), staffID, uuid.New().String())
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}

func TestCancel(t *testing.T) {
	ownerID := uuid.New()

	seed := func(f *fixture, status TicketStatus, total int64) *Ticket {
		ticket := &Ticket{
			ID:                uuid.New(),
			TicketNumber:      uuid.New(),
			EventID:           f.event.ID,
			CustomerID:        ownerID,
			Status:            status,
			TotalPrice:        decimal.NewFromInt(total),
			ParticipantsCount: 1,
		}
		f.store.tickets = append(f.store.tickets, ticket)
		return ticket
	}

	t.Run("confirmed ticket refunds the full price", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusConfirmed, 10000)

		resp, err := f.service.Cancel(context.Background(), ticket.ID, ownerID, users.TypeClient, "cannot attend")
		require.NoError(t, err)

		assert.Equal(t, TicketStatusCancelled, resp.Status)
		require.Len(t, f.store.cancellations, 1)
		assert.True(t, f.store.cancellations[0].RefundAmount.Equal(decimal.NewFromInt(10000)))
		assert.Equal(t, []uuid.UUID{ticket.ID}, f.transport.released)
	})

	t.Run("pending ticket was never charged", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusPending, 10000)

		_, err := f.service.Cancel(context.Background(), ticket.ID, ownerID, users.TypeClient, "")
		require.NoError(t, err)

		require.Len(t, f.store.cancellations, 1)
		assert.True(t, f.store.cancellations[0].RefundAmount.IsZero())
	})

	t.Run("only the owner or a manager may cancel", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusConfirmed, 10000)

		_, err := f.service.Cancel(context.Background(), ticket.ID, uuid.New(), users.TypeClient, "")
		assert.ErrorIs(t, err, ErrNotTicketOwner)

		_, err = f.service.Cancel(context.Background(), ticket.ID, uuid.New(), users.TypeManager, "")
		assert.NoError(t, err)
	})

	t.Run("used ticket cannot be cancelled", func(t *testing.T) {
		f := newFixture(publishedEvent(10, "10000"), nil)
		ticket := seed(f, TicketStatusUsed, 10000)

		_, err := f.service.Cancel(context.Background(), ticket.ID, ownerID, users.TypeClient, "")
		assert.ErrorIs(t, err, ErrTicketNotCancellable)
	})

	t.Run("event may forbid cancellation", func(t *testing.T) {
		event := publishedEvent(10, "10000")
		event.AllowsCancellation = false
		f := newFixture(event, nil)
		ticket := seed(f, TicketStatusConfirmed, 10000)

		_, err := f.service.Cancel(context.Background(), ticket.ID, ownerID, users.TypeClient, "")
		assert.ErrorIs(t, err, ErrCancellationNotAllowed)
	})

	t.Run("window closes before the event starts", func(t *testing.T) {
		event := publishedEvent(10, "10000")
		event.StartDatetime = time.Now().Add(12 * time.Hour) // 24h window already closed
		f := newFixture(event, nil)
		ticket := seed(f, TicketStatusConfirmed, 10000)

		_, err := f.service.Cancel(context.Background(), ticket.ID, ownerID, users.TypeClient, "")
		assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	})
}
