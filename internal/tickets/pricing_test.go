package tickets

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestComputeQuote(t *testing.T) {
	flatRate := d("5000")

	tests := []struct {
		name              string
		unitPrice         string
		discount          string
		participants      int
		requiresTransport bool
		wantBase          string
		wantDiscount      string
		wantTransport     string
		wantTotal         string
	}{
		{
			name:          "single participant no extras",
			unitPrice:     "12000",
			discount:      "0",
			participants:  1,
			wantBase:      "12000",
			wantDiscount:  "0",
			wantTransport: "0",
			wantTotal:     "12000",
		},
		{
			name:          "base price multiplies per participant",
			unitPrice:     "12000",
			discount:      "0",
			participants:  4,
			wantBase:      "48000",
			wantDiscount:  "0",
			wantTransport: "0",
			wantTotal:     "48000",
		},
		{
			name:              "transport fee charged per participant",
			unitPrice:         "25000",
			discount:          "0",
			participants:      3,
			requiresTransport: true,
			wantBase:          "75000",
			wantDiscount:      "0",
			wantTransport:     "15000",
			wantTotal:         "90000",
		},
		{
			name:              "discount applies before transport",
			unitPrice:         "25000",
			discount:          "5000",
			participants:      2,
			requiresTransport: true,
			wantBase:          "50000",
			wantDiscount:      "5000",
			wantTransport:     "10000",
			wantTotal:         "55000",
		},
		{
			name:          "discount larger than base is capped",
			unitPrice:     "1000",
			discount:      "99999",
			participants:  1,
			wantBase:      "1000",
			wantDiscount:  "1000",
			wantTransport: "0",
			wantTotal:     "0",
		},
		{
			name:          "negative discount treated as zero",
			unitPrice:     "8000",
			discount:      "-500",
			participants:  1,
			wantBase:      "8000",
			wantDiscount:  "0",
			wantTransport: "0",
			wantTotal:     "8000",
		},
		{
			name:              "full discount still pays transport",
			unitPrice:         "10000",
			discount:          "10000",
			participants:      1,
			requiresTransport: true,
			wantBase:          "10000",
			wantDiscount:      "10000",
			wantTransport:     "5000",
			wantTotal:         "5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ComputeQuote(d(tt.unitPrice), d(tt.discount), flatRate, tt.participants, tt.requiresTransport)
			require.NoError(t, err)

			assert.True(t, quote.BasePrice.Equal(d(tt.wantBase)), "base: got %s want %s", quote.BasePrice, tt.wantBase)
			assert.True(t, quote.DiscountAmount.Equal(d(tt.wantDiscount)), "discount: got %s want %s", quote.DiscountAmount, tt.wantDiscount)
			assert.True(t, quote.TransportFee.Equal(d(tt.wantTransport)), "transport: got %s want %s", quote.TransportFee, tt.wantTransport)
			assert.True(t, quote.TotalPrice.Equal(d(tt.wantTotal)), "total: got %s want %s", quote.TotalPrice, tt.wantTotal)
		})
	}
}

func TestComputeQuoteRejectsInvalidParticipantCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		_, err := ComputeQuote(d("1000"), decimal.Zero, d("5000"), count, false)
		assert.ErrorIs(t, err, ErrInvalidParticipantCount)
	}
}

func TestComputeQuoteTotalNeverNegative(t *testing.T) {
	quote, err := ComputeQuote(d("100"), d("100000"), decimal.Zero, 1, false)
	require.NoError(t, err)
	assert.False(t, quote.TotalPrice.IsNegative())
}

func TestParseTicketCode(t *testing.T) {
	t.Run("full scannable payload", func(t *testing.T) {
		number, err := parseTicketCode("casaroja:ticket:7f9c38d0-1111-4222-8333-444455556666")
		require.NoError(t, err)
		assert.Equal(t, "7f9c38d0-1111-4222-8333-444455556666", number.String())
	})

	t.Run("bare ticket number", func(t *testing.T) {
		number, err := parseTicketCode("7f9c38d0-1111-4222-8333-444455556666")
		require.NoError(t, err)
		assert.Equal(t, "7f9c38d0-1111-4222-8333-444455556666", number.String())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		for _, code := range []string{"", "   ", "casaroja:ticket:not-a-uuid", "::"} {
			_, err := parseTicketCode(code)
			assert.ErrorIs(t, err, ErrInvalidTicketCode, "code %q", code)
		}
	})
}
