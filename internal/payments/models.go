package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment tracks one charge attempt against a ticket. TotalAmount is
// copied from the ticket at creation and never recalculated afterwards.
type Payment struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TicketID uuid.UUID `json:"ticket_id" gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Currency    string          `json:"currency" gorm:"size:3;not null;default:'CLP'"`

	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentMethod string        `json:"payment_method" gorm:"size:50"`

	ExternalID    string     `json:"external_id" gorm:"size:100;index"`
	FailureReason string     `json:"failure_reason" gorm:"size:255"`
	ProcessedAt   *time.Time `json:"processed_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

// Commission is the money split frozen at the moment a payment
// completes. Later changes to the platform percentage never touch
// rows that already exist. One commission per payment, enforced by a
// unique index.
type Commission struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PaymentID uuid.UUID `json:"payment_id" gorm:"type:uuid;uniqueIndex;not null"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	CultorID  uuid.UUID `json:"cultor_id" gorm:"type:uuid;not null;index"`

	GrossAmount        decimal.Decimal `json:"gross_amount" gorm:"type:numeric(12,2);not null"`
	PlatformPercentage decimal.Decimal `json:"platform_percentage" gorm:"type:numeric(5,2);not null"`
	PlatformCommission decimal.Decimal `json:"platform_commission" gorm:"type:numeric(12,2);not null"`

	TransportCommission decimal.Decimal `json:"transport_commission" gorm:"type:numeric(12,2);not null;default:0"`
	TransportProviderID *uuid.UUID      `json:"transport_provider_id" gorm:"type:uuid"`

	CultorEarning decimal.Decimal `json:"cultor_earning" gorm:"type:numeric(12,2);not null"`

	PayoutStatus string     `json:"payout_status" gorm:"size:20;default:'pending'"`
	PaidOutAt    *time.Time `json:"paid_out_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Commission) TableName() string {
	return "commissions"
}

func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		TicketID:      p.TicketID.String(),
		UserID:        p.UserID.String(),
		TotalAmount:   p.TotalAmount,
		Currency:      p.Currency,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		ExternalID:    p.ExternalID,
		FailureReason: p.FailureReason,
		ProcessedAt:   p.ProcessedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (c *Commission) ToResponse() CommissionResponse {
	response := CommissionResponse{
		ID:                  c.ID.String(),
		PaymentID:           c.PaymentID.String(),
		EventID:             c.EventID.String(),
		CultorID:            c.CultorID.String(),
		GrossAmount:         c.GrossAmount,
		PlatformPercentage:  c.PlatformPercentage,
		PlatformCommission:  c.PlatformCommission,
		TransportCommission: c.TransportCommission,
		CultorEarning:       c.CultorEarning,
		PayoutStatus:        c.PayoutStatus,
		CreatedAt:           c.CreatedAt,
	}

	if c.TransportProviderID != nil {
		providerID := c.TransportProviderID.String()
		response.TransportProviderID = &providerID
	}

	return response
}
