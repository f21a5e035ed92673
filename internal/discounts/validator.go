package discounts

import (
	"errors"
	"time"

	"casaroja/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDiscountNotFound        = errors.New("discount not found")
	ErrDiscountInactive        = errors.New("discount is not active")
	ErrDiscountNotStarted      = errors.New("discount is not yet valid")
	ErrDiscountExpired         = errors.New("discount has expired")
	ErrDiscountExhausted       = errors.New("discount has reached its maximum uses")
	ErrDiscountUserLimit       = errors.New("discount usage limit reached for this user")
	ErrDiscountMinimumNotMet   = errors.New("purchase amount below discount minimum")
	ErrDiscountUserTypeBlocked = errors.New("discount is not available for this user type")
	ErrDiscountWrongEvent      = errors.New("discount does not apply to this event")
)

// ValidationInput carries everything the validity rules need
type ValidationInput struct {
	EventID         uuid.UUID
	UserType        users.UserType
	UserRedemptions int64
	BaseAmount      decimal.Decimal
	Now             time.Time
}

// Validate applies every validity rule in order and returns the first
// violation. A nil error means the discount can be applied.
func (d *Discount) Validate(in ValidationInput) error {
	if d.EventID != in.EventID {
		return ErrDiscountWrongEvent
	}

	if !d.IsActive {
		return ErrDiscountInactive
	}

	if in.Now.Before(d.ValidFrom) {
		return ErrDiscountNotStarted
	}

	if in.Now.After(d.ValidUntil) {
		return ErrDiscountExpired
	}

	if !d.HasUsesRemaining() {
		return ErrDiscountExhausted
	}

	if d.MaxUsesPerUser > 0 && in.UserRedemptions >= int64(d.MaxUsesPerUser) {
		return ErrDiscountUserLimit
	}

	if in.BaseAmount.LessThan(d.MinimumAmount) {
		return ErrDiscountMinimumNotMet
	}

	if eligible := d.EligibleUserTypes(); len(eligible) > 0 {
		if !in.UserType.In(eligible) {
			return ErrDiscountUserTypeBlocked
		}
	}

	return nil
}

// AmountFor computes the discount amount for a base price. Percentage
// discounts are taken off the base; fixed discounts are capped so the
// deduction never exceeds the base itself.
func (d *Discount) AmountFor(base decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal

	switch d.DiscountType {
	case DiscountTypePercentage:
		amount = base.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(base) {
		return base
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
