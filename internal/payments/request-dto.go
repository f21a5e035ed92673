package payments

type CreatePaymentRequest struct {
	TicketID      string `json:"ticket_id" binding:"required,uuid"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// WebhookRequest is the gateway's settlement callback
type WebhookRequest struct {
	Status        string `json:"status" binding:"required,oneof=completed failed"`
	ExternalID    string `json:"external_id"`
	FailureReason string `json:"failure_reason"`
}
