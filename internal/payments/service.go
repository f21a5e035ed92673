package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/notifications"
	"casaroja/internal/shared/config"
	"casaroja/internal/tickets"
	"casaroja/internal/transport"
	"casaroja/internal/users"
	"casaroja/pkg/logger"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrNotPaymentOwner    = errors.New("payment does not belong to this user")
	ErrTicketNotPayable   = errors.New("ticket is not awaiting payment")
	ErrPaymentSettled     = errors.New("payment has already been settled")
	ErrTicketAlreadyPaid  = errors.New("ticket already has a completed payment")
	ErrUnknownWebhookType = errors.New("unknown webhook status")
)

type Service interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error)
	HandleWebhook(ctx context.Context, paymentID uuid.UUID, req WebhookRequest) (*PaymentResponse, error)
	GetPaymentByID(paymentID, userID uuid.UUID, userType users.UserType) (*PaymentResponse, error)
	GetMyPayments(userID uuid.UUID) ([]PaymentResponse, error)
	GetCommission(paymentID, userID uuid.UUID, userType users.UserType) (*CommissionResponse, error)
}

type service struct {
	repo          Repository
	ticketRepo    tickets.Repository
	eventRepo     events.Repository
	transportRepo transport.Repository
	discountRepo  discounts.Repository
	gateway       Gateway
	publisher     notifications.Publisher
	pricing       config.PricingConfig
}

func NewService(
	repo Repository,
	ticketRepo tickets.Repository,
	eventRepo events.Repository,
	transportRepo transport.Repository,
	discountRepo discounts.Repository,
	gateway Gateway,
	publisher notifications.Publisher,
	pricing config.PricingConfig,
) Service {
	return &service{
		repo:          repo,
		ticketRepo:    ticketRepo,
		eventRepo:     eventRepo,
		transportRepo: transportRepo,
		discountRepo:  discountRepo,
		gateway:       gateway,
		publisher:     publisher,
		pricing:       pricing,
	}
}

func (s *service) CreatePayment(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		return nil, errors.New("invalid ticket ID")
	}

	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tickets.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if ticket.CustomerID != userID {
		return nil, tickets.ErrNotTicketOwner
	}

	if ticket.Status != tickets.TicketStatusPending {
		return nil, ErrTicketNotPayable
	}

	existing, err := s.repo.GetByTicket(ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payments: %w", err)
	}
	for _, previous := range existing {
		if previous.Status == PaymentStatusCompleted {
			return nil, ErrTicketAlreadyPaid
		}
	}

	payment := &Payment{
		TicketID:      ticketID,
		UserID:        userID,
		TotalAmount:   ticket.TotalPrice,
		Currency:      ticket.Currency,
		Status:        PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
	}

	if err := s.repo.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		PaymentID: payment.ID,
		Amount:    payment.TotalAmount,
		Currency:  payment.Currency,
		Method:    payment.PaymentMethod,
	})
	if err != nil {
		reason := result.Reason
		if reason == "" {
			reason = err.Error()
		}
		failed, updateErr := s.repo.Update(payment.ID, map[string]interface{}{
			"status":         PaymentStatusFailed,
			"failure_reason": reason,
		})
		if updateErr != nil {
			return nil, fmt.Errorf("failed to record gateway rejection: %w", updateErr)
		}
		response := failed.ToResponse()
		return &response, nil
	}

	updated, err := s.repo.Update(payment.ID, map[string]interface{}{
		"status":      PaymentStatusProcessing,
		"external_id": result.ExternalID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	// Free tickets have nothing to settle through the gateway
	if updated.TotalAmount.IsZero() {
		return s.HandleWebhook(ctx, updated.ID, WebhookRequest{
			Status:     "completed",
			ExternalID: result.ExternalID,
		})
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) HandleWebhook(ctx context.Context, paymentID uuid.UUID, req WebhookRequest) (*PaymentResponse, error) {
	switch req.Status {
	case "completed":
		return s.settleCompleted(ctx, paymentID, req.ExternalID)
	case "failed":
		return s.settleFailed(ctx, paymentID, req.FailureReason)
	default:
		return nil, ErrUnknownWebhookType
	}
}

// settleCompleted confirms the ticket, freezes the commission split and
// records the discount redemption, all inside one transaction under the
// payment row lock. Webhook retries after the first success are answered
// with the already settled payment.
func (s *service) settleCompleted(ctx context.Context, paymentID uuid.UUID, externalID string) (*PaymentResponse, error) {
	var settled *Payment
	var commission *Commission

	err := s.repo.Transaction(func(tx *gorm.DB) error {
		payment, err := s.repo.GetByIDForUpdate(tx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if payment.Status == PaymentStatusCompleted {
			settled = payment
			return nil
		}
		if payment.Status.IsFinal() {
			return ErrPaymentSettled
		}

		ticket, err := s.ticketRepo.GetByIDForUpdate(tx, payment.TicketID)
		if err != nil {
			return fmt.Errorf("failed to lock ticket: %w", err)
		}

		event, err := s.eventRepo.GetByID(ticket.EventID)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}

		transportCommission := ticket.TransportFee
		var transportProviderID *uuid.UUID
		if ticket.TransportServiceID != nil {
			transportService, err := s.transportRepo.GetByID(*ticket.TransportServiceID)
			if err != nil {
				return fmt.Errorf("failed to get transport service: %w", err)
			}
			providerID := transportService.ProviderID
			transportProviderID = &providerID
		}

		platformCommission, cultorEarning, err := SplitCommission(
			payment.TotalAmount, s.pricing.PlatformPercentage, transportCommission)
		if err != nil {
			return err
		}

		exists, err := s.repo.CommissionExistsTx(tx, payment.ID)
		if err != nil {
			return fmt.Errorf("failed to check commission: %w", err)
		}
		if exists {
			return ErrDuplicateCommission
		}

		commission = &Commission{
			PaymentID:           payment.ID,
			EventID:             event.ID,
			CultorID:            event.CultorID,
			GrossAmount:         payment.TotalAmount,
			PlatformPercentage:  s.pricing.PlatformPercentage,
			PlatformCommission:  platformCommission,
			TransportCommission: transportCommission,
			TransportProviderID: transportProviderID,
			CultorEarning:       cultorEarning,
			PayoutStatus:        "pending",
		}
		if err := s.repo.CreateCommissionTx(tx, commission); err != nil {
			return fmt.Errorf("failed to create commission: %w", err)
		}

		// The discount spend is only committed once the money arrives.
		// A cap consumed since purchase must not fail a captured payment;
		// the ticket simply settles without spending the code.
		if ticket.DiscountID != nil {
			err := s.discountRepo.RedeemTx(tx, *ticket.DiscountID, ticket.CustomerID, ticket.ID)
			if err != nil &&
				!errors.Is(err, discounts.ErrDiscountExhausted) &&
				!errors.Is(err, discounts.ErrDiscountUserLimit) {
				return err
			}
		}

		if err := s.ticketRepo.UpdateTx(tx, ticket.ID, map[string]interface{}{
			"status": tickets.TicketStatusConfirmed,
		}); err != nil {
			return fmt.Errorf("failed to confirm ticket: %w", err)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       PaymentStatusCompleted,
			"processed_at": now,
		}
		if externalID != "" {
			updates["external_id"] = externalID
		}
		if err := s.repo.UpdateTx(tx, payment.ID, updates); err != nil {
			return fmt.Errorf("failed to complete payment: %w", err)
		}

		payment.Status = PaymentStatusCompleted
		payment.ProcessedAt = &now
		if externalID != "" {
			payment.ExternalID = externalID
		}
		settled = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if commission != nil {
		logger.GetDefault().LogPaymentCompleted(ctx, settled.ID.String(), settled.TicketID.String(), settled.TotalAmount.String())
		logger.GetDefault().LogCommissionCreated(ctx, settled.ID.String(),
			commission.PlatformCommission.String(),
			commission.CultorEarning.String(),
			commission.TransportCommission.String(),
		)

		_ = s.publisher.Publish(ctx, notifications.EventPaymentCompleted, settled.ID.String(), map[string]interface{}{
			"payment_id":   settled.ID.String(),
			"ticket_id":    settled.TicketID.String(),
			"total_amount": settled.TotalAmount.String(),
			"currency":     settled.Currency,
		})
		_ = s.publisher.Publish(ctx, notifications.EventTicketConfirmed, settled.TicketID.String(), map[string]interface{}{
			"ticket_id":  settled.TicketID.String(),
			"payment_id": settled.ID.String(),
		})
	}

	response := settled.ToResponse()
	return &response, nil
}

func (s *service) settleFailed(ctx context.Context, paymentID uuid.UUID, reason string) (*PaymentResponse, error) {
	var settled *Payment

	// The ticket stays pending so the customer can retry with a new payment
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		payment, err := s.repo.GetByIDForUpdate(tx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if payment.Status == PaymentStatusFailed {
			settled = payment
			return nil
		}
		if payment.Status.IsFinal() {
			return ErrPaymentSettled
		}

		if err := s.repo.UpdateTx(tx, payment.ID, map[string]interface{}{
			"status":         PaymentStatusFailed,
			"failure_reason": reason,
		}); err != nil {
			return fmt.Errorf("failed to mark payment failed: %w", err)
		}

		payment.Status = PaymentStatusFailed
		payment.FailureReason = reason
		settled = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, notifications.EventPaymentFailed, settled.ID.String(), map[string]interface{}{
		"payment_id": settled.ID.String(),
		"ticket_id":  settled.TicketID.String(),
		"reason":     reason,
	})

	response := settled.ToResponse()
	return &response, nil
}

func (s *service) GetPaymentByID(paymentID, userID uuid.UUID, userType users.UserType) (*PaymentResponse, error) {
	payment, err := s.repo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.UserID != userID && userType != users.TypeManager {
		return nil, ErrNotPaymentOwner
	}

	response := payment.ToResponse()
	return &response, nil
}

func (s *service) GetMyPayments(userID uuid.UUID) ([]PaymentResponse, error) {
	paymentList, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	responses := make([]PaymentResponse, len(paymentList))
	for i, payment := range paymentList {
		responses[i] = payment.ToResponse()
	}

	return responses, nil
}

func (s *service) GetCommission(paymentID, userID uuid.UUID, userType users.UserType) (*CommissionResponse, error) {
	commission, err := s.repo.GetCommissionByPayment(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}

	if commission.CultorID != userID && userType != users.TypeManager {
		return nil, ErrNotPaymentOwner
	}

	response := commission.ToResponse()
	return &response, nil
}
