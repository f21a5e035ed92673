package tickets

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
	TicketStatusRefunded  TicketStatus = "refunded"
)

// HoldsSpot reports whether a ticket in this status occupies event capacity
func (s TicketStatus) HoldsSpot() bool {
	return s == TicketStatusPending || s == TicketStatusConfirmed || s == TicketStatusUsed
}

// CanCancel reports whether the ticket can still be cancelled by its owner
func (s TicketStatus) CanCancel() bool {
	return s == TicketStatusPending || s == TicketStatusConfirmed
}

// CanCheckIn reports whether the ticket can be redeemed at the door
func (s TicketStatus) CanCheckIn() bool {
	return s == TicketStatusConfirmed
}

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusPending, TicketStatusConfirmed, TicketStatusUsed, TicketStatusCancelled, TicketStatusRefunded:
		return true
	}
	return false
}
