package tickets

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketResponse struct {
	ID                 string          `json:"id"`
	TicketNumber       string          `json:"ticket_number"`
	QRCode             string          `json:"qr_code"`
	EventID            string          `json:"event_id"`
	CustomerID         string          `json:"customer_id"`
	Status             TicketStatus    `json:"status"`
	BasePrice          decimal.Decimal `json:"base_price"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TransportFee       decimal.Decimal `json:"transport_fee"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	Currency           string          `json:"currency"`
	DiscountID         *string         `json:"discount_id,omitempty"`
	ParticipantsCount  int             `json:"participants_count"`
	ParticipantNames   []string        `json:"participant_names,omitempty"`
	NeedsTransport     bool            `json:"needs_transport"`
	TransportServiceID *string         `json:"transport_service_id,omitempty"`
	CheckedInAt        *time.Time      `json:"checked_in_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

type PaginatedTickets struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}
