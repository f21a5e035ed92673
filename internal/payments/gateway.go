package payments

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPaymentGateway = errors.New("payment gateway rejected the charge")

// Gateway is the external payment processor. The platform only ever
// sees an opaque external reference; settlement status arrives later
// through the webhook.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type ChargeRequest struct {
	PaymentID uuid.UUID
	Amount    decimal.Decimal
	Currency  string
	Method    string
}

type ChargeResult struct {
	ExternalID string
	Accepted   bool
	Reason     string
}

// simulatedGateway accepts every charge and issues a transaction
// reference. It stands in for the processor integration in local and
// test environments.
type simulatedGateway struct{}

func NewSimulatedGateway() Gateway {
	return &simulatedGateway{}
}

func (g *simulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if req.Amount.IsNegative() {
		return ChargeResult{Accepted: false, Reason: "negative amount"}, ErrPaymentGateway
	}

	return ChargeResult{
		ExternalID: generateTransactionID(),
		Accepted:   true,
	}, nil
}

func generateTransactionID() string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	suffix := make([]byte, 8)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			suffix[i] = charset[0]
			continue
		}
		suffix[i] = charset[n.Int64()]
	}

	return fmt.Sprintf("TXN_%d_%s", time.Now().Unix(), string(suffix))
}
