package tickets

type PurchaseTicketRequest struct {
	EventID            string   `json:"event_id" binding:"required,uuid"`
	ParticipantCount   int      `json:"participant_count" binding:"required,min=1"`
	DiscountCode       string   `json:"discount_code"`
	NeedsTransport     bool     `json:"needs_transport"`
	TransportServiceID string   `json:"transport_service_id" binding:"omitempty,uuid"`
	PickupLocation     string   `json:"pickup_location"`
	ParticipantNames   []string `json:"participant_names"`
}

type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}

type CancelTicketRequest struct {
	Reason string `json:"reason"`
}

type TicketListQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
	Status string `form:"status"`
}
