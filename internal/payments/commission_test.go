package payments

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

func TestSplitCommission(t *testing.T) {
	tests := []struct {
		name         string
		gross        string
		percentage   string
		transport    string
		wantPlatform string
		wantCultor   string
	}{
		{
			name:         "standard fifteen percent cut",
			gross:        "10000",
			percentage:   "15",
			transport:    "0",
			wantPlatform: "1500",
			wantCultor:   "8500",
		},
		{
			name:         "transport commission comes out of the cultor side",
			gross:        "60000",
			percentage:   "15",
			transport:    "10000",
			wantPlatform: "9000",
			wantCultor:   "41000",
		},
		{
			name:         "fractional cut rounds to cents",
			gross:        "9999",
			percentage:   "15",
			transport:    "0",
			wantPlatform: "1499.85",
			wantCultor:   "8499.15",
		},
		{
			name:         "zero gross splits to zero",
			gross:        "0",
			percentage:   "15",
			transport:    "0",
			wantPlatform: "0",
			wantCultor:   "0",
		},
		{
			name:         "zero percentage leaves everything to the cultor",
			gross:        "25000",
			percentage:   "0",
			transport:    "5000",
			wantPlatform: "0",
			wantCultor:   "20000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform, cultor, err := SplitCommission(d(tt.gross), d(tt.percentage), d(tt.transport))
			require.NoError(t, err)

			assert.True(t, platform.Equal(d(tt.wantPlatform)), "platform: got %s want %s", platform, tt.wantPlatform)
			assert.True(t, cultor.Equal(d(tt.wantCultor)), "cultor: got %s want %s", cultor, tt.wantCultor)

			// The three parts must reassemble the gross exactly
			sum := platform.Add(cultor).Add(d(tt.transport))
			assert.True(t, sum.Equal(d(tt.gross)), "sum: got %s want %s", sum, tt.gross)
		})
	}
}

func TestSplitCommissionUnderflow(t *testing.T) {
	t.Run("transport commission exceeds the cultor share", func(t *testing.T) {
		_, _, err := SplitCommission(d("10000"), d("15"), d("9000"))
		assert.ErrorIs(t, err, ErrCommissionUnderflow)
	})

	t.Run("negative inputs rejected", func(t *testing.T) {
		_, _, err := SplitCommission(d("-1"), d("15"), d("0"))
		assert.ErrorIs(t, err, ErrCommissionUnderflow)

		_, _, err = SplitCommission(d("100"), d("-15"), d("0"))
		assert.ErrorIs(t, err, ErrCommissionUnderflow)

		_, _, err = SplitCommission(d("100"), d("15"), d("-1"))
		assert.ErrorIs(t, err, ErrCommissionUnderflow)
	})
}
