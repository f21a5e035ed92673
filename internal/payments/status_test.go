package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusIsFinal(t *testing.T) {
	final := []PaymentStatus{
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusCancelled,
		PaymentStatusRefunded,
		PaymentStatusPartiallyRefunded,
	}
	for _, status := range final {
		assert.True(t, status.IsFinal(), "%s", status)
	}

	assert.False(t, PaymentStatusPending.IsFinal())
	assert.False(t, PaymentStatusProcessing.IsFinal())
}
