package payments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/notifications"
	"casaroja/internal/shared/config"
	"casaroja/internal/tickets"
	"casaroja/internal/transport"
)

type paymentStore struct {
	mu          sync.Mutex
	payments    []*Payment
	commissions []*Commission
	tickets     map[uuid.UUID]*tickets.Ticket
	redemptions int
}

type fakePaymentRepo struct {
	Repository
	store *paymentStore
}

func (r *fakePaymentRepo) Transaction(fn func(tx *gorm.DB) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Snapshot everything the settlement can touch so a failed
	// transaction leaves no phantom writes behind
	paymentCopies := make([]Payment, len(r.store.payments))
	for i, payment := range r.store.payments {
		paymentCopies[i] = *payment
	}
	ticketCopies := make(map[uuid.UUID]tickets.Ticket, len(r.store.tickets))
	for id, ticket := range r.store.tickets {
		ticketCopies[id] = *ticket
	}
	commissionCount := len(r.store.commissions)
	redemptions := r.store.redemptions

	if err := fn(nil); err != nil {
		for i := range paymentCopies {
			*r.store.payments[i] = paymentCopies[i]
		}
		for id, copied := range ticketCopies {
			*r.store.tickets[id] = copied
		}
		r.store.commissions = r.store.commissions[:commissionCount]
		r.store.redemptions = redemptions
		return err
	}
	return nil
}

func (r *fakePaymentRepo) Create(payment *Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	payment.ID = uuid.New()
	payment.Status = PaymentStatusPending
	r.store.payments = append(r.store.payments, payment)
	return nil
}

func (r *fakePaymentRepo) GetByID(id uuid.UUID) (*Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.find(id)
}

func (r *fakePaymentRepo) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Payment, error) {
	found, err := r.find(id)
	if err != nil {
		return nil, err
	}
	copied := *found
	return &copied, nil
}

func (r *fakePaymentRepo) GetByTicket(ticketID uuid.UUID) ([]Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matches []Payment
	for _, payment := range r.store.payments {
		if payment.TicketID == ticketID {
			matches = append(matches, *payment)
		}
	}
	return matches, nil
}

func (r *fakePaymentRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.apply(id, updates); err != nil {
		return nil, err
	}
	return r.find(id)
}

func (r *fakePaymentRepo) UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	return r.apply(id, updates)
}

func (r *fakePaymentRepo) CommissionExistsTx(tx *gorm.DB, paymentID uuid.UUID) (bool, error) {
	for _, commission := range r.store.commissions {
		if commission.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) CreateCommissionTx(tx *gorm.DB, commission *Commission) error {
	commission.ID = uuid.New()
	r.store.commissions = append(r.store.commissions, commission)
	return nil
}

func (r *fakePaymentRepo) GetCommissionByPayment(paymentID uuid.UUID) (*Commission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, commission := range r.store.commissions {
		if commission.PaymentID == paymentID {
			found := *commission
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) find(id uuid.UUID) (*Payment, error) {
	for _, payment := range r.store.payments {
		if payment.ID == id {
			return payment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) apply(id uuid.UUID, updates map[string]interface{}) error {
	payment, err := r.find(id)
	if err != nil {
		return err
	}
	if status, ok := updates["status"].(PaymentStatus); ok {
		payment.Status = status
	}
	if externalID, ok := updates["external_id"].(string); ok {
		payment.ExternalID = externalID
	}
	if reason, ok := updates["failure_reason"].(string); ok {
		payment.FailureReason = reason
	}
	return nil
}

type fakeTicketRepo struct {
	tickets.Repository
	store *paymentStore
}

func (r *fakeTicketRepo) GetByID(id uuid.UUID) (*tickets.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *ticket
	return &found, nil
}

func (r *fakeTicketRepo) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*tickets.Ticket, error) {
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *ticket
	return &found, nil
}

func (r *fakeTicketRepo) UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	ticket, ok := r.store.tickets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(tickets.TicketStatus); ok {
		ticket.Status = status
	}
	return nil
}

type fakeEventRepo struct {
	events.Repository
	event *events.Event
}

func (r *fakeEventRepo) GetByID(id uuid.UUID) (*events.Event, error) {
	if id != r.event.ID {
		return nil, gorm.ErrRecordNotFound
	}
	found := *r.event
	return &found, nil
}

type fakeTransportRepo struct {
	transport.Repository
	service *transport.TransportService
}

func (r *fakeTransportRepo) GetByID(id uuid.UUID) (*transport.TransportService, error) {
	if r.service == nil || id != r.service.ID {
		return nil, gorm.ErrRecordNotFound
	}
	found := *r.service
	return &found, nil
}

type fakeDiscountRepo struct {
	discounts.Repository
	store     *paymentStore
	redeemErr error
}

func (r *fakeDiscountRepo) RedeemTx(tx *gorm.DB, discountID, userID, ticketID uuid.UUID) error {
	if r.redeemErr != nil {
		return r.redeemErr
	}
	r.store.redemptions++
	return nil
}

type rejectingGateway struct {
	reason string
}

func (g *rejectingGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	return ChargeResult{Reason: g.reason}, errors.New("card declined")
}

type paymentFixture struct {
	service   Service
	store     *paymentStore
	event     *events.Event
	discounts *fakeDiscountRepo
}

func newPaymentFixture(gateway Gateway, transportSvc *transport.TransportService) *paymentFixture {
	store := &paymentStore{tickets: map[uuid.UUID]*tickets.Ticket{}}
	event := &events.Event{ID: uuid.New(), CultorID: uuid.New()}
	discountRepo := &fakeDiscountRepo{store: store}

	if gateway == nil {
		gateway = NewSimulatedGateway()
	}

	pricing := config.PricingConfig{
		FlatTransportRate:  decimal.NewFromInt(5000),
		PlatformPercentage: decimal.NewFromInt(15),
		Currency:           "CLP",
		QRNamespace:        "casaroja",
	}

	svc := NewService(
		&fakePaymentRepo{store: store},
		&fakeTicketRepo{store: store},
		&fakeEventRepo{event: event},
		&fakeTransportRepo{service: transportSvc},
		discountRepo,
		gateway,
		notifications.NewNoopPublisher(),
		pricing,
	)

	return &paymentFixture{service: svc, store: store, event: event, discounts: discountRepo}
}

func (f *paymentFixture) seedTicket(ownerID uuid.UUID, total int64) *tickets.Ticket {
	ticket := &tickets.Ticket{
		ID:                uuid.New(),
		TicketNumber:      uuid.New(),
		EventID:           f.event.ID,
		CustomerID:        ownerID,
		TotalPrice:        decimal.NewFromInt(total),
		Currency:          "CLP",
		Status:            tickets.TicketStatusPending,
		ParticipantsCount: 1,
	}
	f.store.tickets[ticket.ID] = ticket
	return ticket
}

func TestCreatePayment(t *testing.T) {
	ownerID := uuid.New()

	t.Run("accepted charge moves the payment to processing", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 25000)

		resp, err := f.service.CreatePayment(context.Background(), ownerID, CreatePaymentRequest{
			TicketID:      ticket.ID.String(),
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusProcessing, resp.Status)
		assert.NotEmpty(t, resp.ExternalID)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(25000)))

		// The ticket is only confirmed by the webhook
		assert.Equal(t, tickets.TicketStatusPending, f.store.tickets[ticket.ID].Status)
	})

	t.Run("only the ticket owner can pay", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 25000)

		_, err := f.service.CreatePayment(context.Background(), uuid.New(), CreatePaymentRequest{
			TicketID:      ticket.ID.String(),
			PaymentMethod: "card",
		})
		assert.ErrorIs(t, err, tickets.ErrNotTicketOwner)
	})

	t.Run("confirmed ticket is not payable", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 25000)
		ticket.Status = tickets.TicketStatusConfirmed

		_, err := f.service.CreatePayment(context.Background(), ownerID, CreatePaymentRequest{
			TicketID:      ticket.ID.String(),
			PaymentMethod: "card",
		})
		assert.ErrorIs(t, err, ErrTicketNotPayable)
	})

	t.Run("gateway rejection records the failure without an error", func(t *testing.T) {
		f := newPaymentFixture(&rejectingGateway{reason: "insufficient funds"}, nil)
		ticket := f.seedTicket(ownerID, 25000)

		resp, err := f.service.CreatePayment(context.Background(), ownerID, CreatePaymentRequest{
			TicketID:      ticket.ID.String(),
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusFailed, resp.Status)
		assert.Equal(t, "insufficient funds", resp.FailureReason)
		assert.Equal(t, tickets.TicketStatusPending, f.store.tickets[ticket.ID].Status)
	})

	t.Run("free ticket settles immediately", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 0)

		resp, err := f.service.CreatePayment(context.Background(), ownerID, CreatePaymentRequest{
			TicketID:      ticket.ID.String(),
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, resp.Status)
		assert.Equal(t, tickets.TicketStatusConfirmed, f.store.tickets[ticket.ID].Status)
		assert.Len(t, f.store.commissions, 1)
	})
}

func TestWebhookCompleted(t *testing.T) {
	ownerID := uuid.New()

	start := func(t *testing.T, f *paymentFixture, ticket *tickets.Ticket) uuid.UUID {
		resp, err := f.service.CreatePayment(context.Background(), ownerID, CreatePaymentRequest{
			TicketID:      ticket.ID.String(),
			PaymentMethod: "card",
		})
		require.NoError(t, err)
		paymentID, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		return paymentID
	}

	t.Run("confirms the ticket and freezes the commission", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 60000)
		paymentID := start(t, f, ticket)

		resp, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, resp.Status)
		assert.Equal(t, tickets.TicketStatusConfirmed, f.store.tickets[ticket.ID].Status)

		require.Len(t, f.store.commissions, 1)
		commission := f.store.commissions[0]
		assert.True(t, commission.GrossAmount.Equal(decimal.NewFromInt(60000)))
		assert.True(t, commission.PlatformCommission.Equal(decimal.NewFromInt(9000)))
		assert.True(t, commission.CultorEarning.Equal(decimal.NewFromInt(51000)))
		assert.Equal(t, f.event.CultorID, commission.CultorID)
	})

	t.Run("transport fee goes to the provider", func(t *testing.T) {
		transportSvc := &transport.TransportService{ID: uuid.New(), ProviderID: uuid.New()}
		f := newPaymentFixture(nil, transportSvc)
		ticket := f.seedTicket(ownerID, 60000)
		ticket.TransportFee = decimal.NewFromInt(10000)
		ticket.TransportServiceID = &transportSvc.ID
		paymentID := start(t, f, ticket)

		_, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)

		require.Len(t, f.store.commissions, 1)
		commission := f.store.commissions[0]
		assert.True(t, commission.TransportCommission.Equal(decimal.NewFromInt(10000)))
		assert.True(t, commission.PlatformCommission.Equal(decimal.NewFromInt(9000)))
		assert.True(t, commission.CultorEarning.Equal(decimal.NewFromInt(41000)))
		require.NotNil(t, commission.TransportProviderID)
		assert.Equal(t, transportSvc.ProviderID, *commission.TransportProviderID)
	})

	t.Run("discount is redeemed when the money arrives", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 13500)
		discountID := uuid.New()
		ticket.DiscountID = &discountID
		paymentID := start(t, f, ticket)

		assert.Equal(t, 0, f.store.redemptions)

		_, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.redemptions)
	})

	t.Run("cap consumed after purchase does not strand the payment", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 13500)
		discountID := uuid.New()
		ticket.DiscountID = &discountID
		paymentID := start(t, f, ticket)

		// The last use went to another customer while this payment was
		// in flight; the captured money must still settle
		f.discounts.redeemErr = discounts.ErrDiscountExhausted

		resp, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, resp.Status)
		assert.Equal(t, tickets.TicketStatusConfirmed, f.store.tickets[ticket.ID].Status)
		assert.Len(t, f.store.commissions, 1)
		assert.Equal(t, 0, f.store.redemptions)
	})

	t.Run("per user cap consumed after purchase settles the same way", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 13500)
		discountID := uuid.New()
		ticket.DiscountID = &discountID
		paymentID := start(t, f, ticket)

		f.discounts.redeemErr = discounts.ErrDiscountUserLimit

		resp, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusCompleted, resp.Status)
		assert.Equal(t, 0, f.store.redemptions)
	})

	t.Run("second commission for one payment is rejected", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 60000)
		paymentID := start(t, f, ticket)

		// A commission row already exists for this payment even though the
		// payment never reached completed (a crashed earlier settlement)
		f.store.commissions = append(f.store.commissions, &Commission{
			ID:        uuid.New(),
			PaymentID: paymentID,
			EventID:   f.event.ID,
		})

		_, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrDuplicateCommission)

		// The aborted settlement changed nothing
		assert.Equal(t, tickets.TicketStatusPending, f.store.tickets[ticket.ID].Status)
		assert.Equal(t, PaymentStatusProcessing, f.store.payments[0].Status)
		assert.Len(t, f.store.commissions, 1)
	})

	t.Run("retries are idempotent", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 60000)
		paymentID := start(t, f, ticket)

		_, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)

		resp, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, resp.Status)
		assert.Len(t, f.store.commissions, 1)
	})

	t.Run("completed webhook on a failed payment is rejected", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)
		ticket := f.seedTicket(ownerID, 60000)
		paymentID := start(t, f, ticket)

		_, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "failed", FailureReason: "timeout"})
		require.NoError(t, err)

		_, err = f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrPaymentSettled)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)

		_, err := f.service.HandleWebhook(context.Background(), uuid.New(), WebhookRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("unknown webhook status", func(t *testing.T) {
		f := newPaymentFixture(nil, nil)

		_, err := f.service.HandleWebhook(context.Background(), uuid.New(), WebhookRequest{Status: "refunded"})
		assert.ErrorIs(t, err, ErrUnknownWebhookType)
	})
}

func TestWebhookFailed(t *testing.T) {
	ownerID := uuid.New()

	f := newPaymentFixture(nil, nil)
	ticket := f.seedTicket(ownerID, 60000)

	created, err := f.service.CreatePayment(context.Background(), ownerID, CreatePaymentRequest{
		TicketID:      ticket.ID.String(),
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	paymentID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	resp, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "failed", FailureReason: "timeout"})
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusFailed, resp.Status)
	assert.Equal(t, "timeout", resp.FailureReason)

	// The ticket stays pending so the customer can retry
	assert.Equal(t, tickets.TicketStatusPending, f.store.tickets[ticket.ID].Status)
	assert.Empty(t, f.store.commissions)

	// Failure retries are idempotent too
	again, err := f.service.HandleWebhook(context.Background(), paymentID, WebhookRequest{Status: "failed", FailureReason: "timeout"})
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusFailed, again.Status)
}
