package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID            string          `json:"id"`
	TicketID      string          `json:"ticket_id"`
	UserID        string          `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	Status        PaymentStatus   `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	ExternalID    string          `json:"external_id,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CommissionResponse struct {
	ID                  string          `json:"id"`
	PaymentID           string          `json:"payment_id"`
	EventID             string          `json:"event_id"`
	CultorID            string          `json:"cultor_id"`
	GrossAmount         decimal.Decimal `json:"gross_amount"`
	PlatformPercentage  decimal.Decimal `json:"platform_percentage"`
	PlatformCommission  decimal.Decimal `json:"platform_commission"`
	TransportCommission decimal.Decimal `json:"transport_commission"`
	TransportProviderID *string         `json:"transport_provider_id,omitempty"`
	CultorEarning       decimal.Decimal `json:"cultor_earning"`
	PayoutStatus        string          `json:"payout_status"`
	CreatedAt           time.Time       `json:"created_at"`
}
