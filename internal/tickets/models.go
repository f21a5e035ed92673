package tickets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is the purchased admission record. TicketNumber is assigned once
// at purchase and never changes; QRCode is derived from it and is the
// scannable payload presented at check-in.
type Ticket struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TicketNumber uuid.UUID `json:"ticket_number" gorm:"type:uuid;uniqueIndex;not null"`
	QRCode       string    `json:"qr_code" gorm:"size:255;not null"`

	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`

	BasePrice      decimal.Decimal `json:"base_price" gorm:"type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2);not null;default:0"`
	TransportFee   decimal.Decimal `json:"transport_fee" gorm:"type:numeric(12,2);not null;default:0"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2);not null"`
	Currency       string          `json:"currency" gorm:"size:3;not null;default:'CLP'"`

	DiscountID *uuid.UUID `json:"discount_id" gorm:"type:uuid"`

	Status TicketStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	ParticipantsCount int      `json:"participants_count" gorm:"not null;check:participants_count > 0"`
	ParticipantNames  []string `json:"participant_names" gorm:"serializer:json;type:jsonb"`

	NeedsTransport     bool       `json:"needs_transport" gorm:"default:false"`
	TransportServiceID *uuid.UUID `json:"transport_service_id" gorm:"type:uuid"`

	CheckedInAt *time.Time `json:"checked_in_at"`
	CheckedInBy *uuid.UUID `json:"checked_in_by" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// Cancellation records why and when a ticket was cancelled, and the
// amount owed back if the ticket had already been paid.
type Cancellation struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TicketID     uuid.UUID       `json:"ticket_id" gorm:"type:uuid;uniqueIndex;not null"`
	Reason       string          `json:"reason" gorm:"type:text"`
	RefundAmount decimal.Decimal `json:"refund_amount" gorm:"type:numeric(12,2);not null;default:0"`
	CancelledBy  uuid.UUID       `json:"cancelled_by" gorm:"type:uuid;not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Cancellation) TableName() string {
	return "ticket_cancellations"
}

func (t *Ticket) ToResponse() TicketResponse {
	response := TicketResponse{
		ID:                t.ID.String(),
		TicketNumber:      t.TicketNumber.String(),
		QRCode:            t.QRCode,
		EventID:           t.EventID.String(),
		CustomerID:        t.CustomerID.String(),
		Status:            t.Status,
		BasePrice:         t.BasePrice,
		DiscountAmount:    t.DiscountAmount,
		TransportFee:      t.TransportFee,
		TotalPrice:        t.TotalPrice,
		Currency:          t.Currency,
		ParticipantsCount: t.ParticipantsCount,
		ParticipantNames:  t.ParticipantNames,
		NeedsTransport:    t.NeedsTransport,
		CheckedInAt:       t.CheckedInAt,
		CreatedAt:         t.CreatedAt,
	}

	if t.DiscountID != nil {
		discountID := t.DiscountID.String()
		response.DiscountID = &discountID
	}
	if t.TransportServiceID != nil {
		serviceID := t.TransportServiceID.String()
		response.TransportServiceID = &serviceID
	}

	return response
}
