package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventRevenue aggregates every settled payment for one event
type EventRevenue struct {
	EventID             string          `json:"event_id"`
	EventTitle          string          `json:"event_title"`
	TicketsSold         int64           `json:"tickets_sold"`
	ParticipantsTotal   int64           `json:"participants_total"`
	GrossRevenue        decimal.Decimal `json:"gross_revenue"`
	PlatformCommission  decimal.Decimal `json:"platform_commission"`
	TransportCommission decimal.Decimal `json:"transport_commission"`
	CultorEarnings      decimal.Decimal `json:"cultor_earnings"`
	Currency            string          `json:"currency"`
}

// CultorEarnings summarises what a cultor has earned across their events
type CultorEarnings struct {
	CultorID        string                `json:"cultor_id"`
	EventsWithSales int64                 `json:"events_with_sales"`
	PaymentsTotal   int64                 `json:"payments_total"`
	GrossRevenue    decimal.Decimal       `json:"gross_revenue"`
	TotalEarnings   decimal.Decimal       `json:"total_earnings"`
	PendingPayout   decimal.Decimal       `json:"pending_payout"`
	PerEvent        []CultorEventEarnings `json:"per_event"`
}

type CultorEventEarnings struct {
	EventID       string          `json:"event_id"`
	EventTitle    string          `json:"event_title"`
	PaymentsTotal int64           `json:"payments_total"`
	GrossRevenue  decimal.Decimal `json:"gross_revenue"`
	Earnings      decimal.Decimal `json:"earnings"`
}

// PlatformOverview is the manager dashboard headline
type PlatformOverview struct {
	TotalEvents        int64           `json:"total_events"`
	PublishedEvents    int64           `json:"published_events"`
	TicketsSold        int64           `json:"tickets_sold"`
	TicketsCancelled   int64           `json:"tickets_cancelled"`
	GrossRevenue       decimal.Decimal `json:"gross_revenue"`
	PlatformCommission decimal.Decimal `json:"platform_commission"`
	CultorEarnings     decimal.Decimal `json:"cultor_earnings"`
	GeneratedAt        time.Time       `json:"generated_at"`
}
