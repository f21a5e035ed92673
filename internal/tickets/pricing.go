package tickets

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidParticipantCount = errors.New("participant count must be at least 1")
	ErrEventNotBookable        = errors.New("event is not open for ticket sales")
)

// Quote is the priced but unpersisted result of the pricing rules
type Quote struct {
	BasePrice      decimal.Decimal `json:"base_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TransportFee   decimal.Decimal `json:"transport_fee"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// ComputeQuote applies the pricing rules for one purchase:
//
//	base      = unitPrice * participants
//	transport = flatRate * participants (only when the event requires it)
//	total     = max(base - discount + transport, 0)
//
// The discount amount is expected to be already validated and capped by
// the discount rules; it is clamped here to the base so a stale value
// can never drive the base negative on its own.
func ComputeQuote(unitPrice, discountAmount, flatTransportRate decimal.Decimal, participants int, requiresTransport bool) (Quote, error) {
	if participants < 1 {
		return Quote{}, ErrInvalidParticipantCount
	}

	count := decimal.NewFromInt(int64(participants))
	base := unitPrice.Mul(count).Round(2)

	if discountAmount.IsNegative() {
		discountAmount = decimal.Zero
	}
	if discountAmount.GreaterThan(base) {
		discountAmount = base
	}

	transportFee := decimal.Zero
	if requiresTransport {
		transportFee = flatTransportRate.Mul(count).Round(2)
	}

	total := base.Sub(discountAmount).Add(transportFee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		BasePrice:      base,
		DiscountAmount: discountAmount,
		TransportFee:   transportFee,
		TotalPrice:     total,
	}, nil
}
