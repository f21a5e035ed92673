package payments

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrCommissionUnderflow = errors.New("commission split exceeds gross amount")
	ErrDuplicateCommission = errors.New("commission already exists for this payment")
)

// SplitCommission divides a completed payment between the platform, the
// transport provider and the cultor:
//
//	platform = round2(gross * platformPercentage / 100)
//	cultor   = gross - platform - transportCommission
//
// The three parts always sum to the gross. A split where the cultor
// would owe money is rejected.
func SplitCommission(gross, platformPercentage, transportCommission decimal.Decimal) (platformCommission, cultorEarning decimal.Decimal, err error) {
	if gross.IsNegative() || platformPercentage.IsNegative() || transportCommission.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrCommissionUnderflow
	}

	platformCommission = gross.Mul(platformPercentage).Div(decimal.NewFromInt(100)).Round(2)

	cultorEarning = gross.Sub(platformCommission).Sub(transportCommission)
	if cultorEarning.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrCommissionUnderflow
	}

	return platformCommission, cultorEarning, nil
}
