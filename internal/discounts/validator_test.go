package discounts

import (
	"testing"
	"time"

	"casaroja/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func activeDiscount(eventID uuid.UUID, now time.Time) Discount {
	return Discount{
		ID:             uuid.New(),
		EventID:        eventID,
		Code:           "CUECA10",
		DiscountType:   DiscountTypePercentage,
		Value:          d("10"),
		MaxUses:        100,
		UsedCount:      5,
		MaxUsesPerUser: 1,
		ValidFrom:      now.Add(-24 * time.Hour),
		ValidUntil:     now.Add(24 * time.Hour),
		MinimumAmount:  d("0"),
		IsActive:       true,
	}
}

func TestDiscountValidate(t *testing.T) {
	eventID := uuid.New()
	now := time.Now()

	baseInput := ValidationInput{
		EventID:         eventID,
		UserType:        users.TypeClient,
		UserRedemptions: 0,
		BaseAmount:      d("20000"),
		Now:             now,
	}

	t.Run("valid discount passes", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		assert.NoError(t, discount.Validate(baseInput))
	})

	t.Run("wrong event", func(t *testing.T) {
		discount := activeDiscount(uuid.New(), now)
		assert.ErrorIs(t, discount.Validate(baseInput), ErrDiscountWrongEvent)
	})

	t.Run("inactive", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.IsActive = false
		assert.ErrorIs(t, discount.Validate(baseInput), ErrDiscountInactive)
	})

	t.Run("not yet started", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.ValidFrom = now.Add(time.Hour)
		assert.ErrorIs(t, discount.Validate(baseInput), ErrDiscountNotStarted)
	})

	t.Run("expired", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.ValidUntil = now.Add(-time.Hour)
		assert.ErrorIs(t, discount.Validate(baseInput), ErrDiscountExpired)
	})

	t.Run("global cap reached", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.MaxUses = 5
		discount.UsedCount = 5
		assert.ErrorIs(t, discount.Validate(baseInput), ErrDiscountExhausted)
	})

	t.Run("zero max uses means unlimited", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.MaxUses = 0
		discount.UsedCount = 9999
		assert.NoError(t, discount.Validate(baseInput))
	})

	t.Run("per user limit reached", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		input := baseInput
		input.UserRedemptions = 1
		assert.ErrorIs(t, discount.Validate(input), ErrDiscountUserLimit)
	})

	t.Run("minimum amount not met", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.MinimumAmount = d("50000")
		assert.ErrorIs(t, discount.Validate(baseInput), ErrDiscountMinimumNotMet)
	})

	t.Run("user type restriction blocks others", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		discount.ApplicableUserTypes = "client"

		assert.NoError(t, discount.Validate(baseInput))

		input := baseInput
		input.UserType = users.TypeCultor
		assert.ErrorIs(t, discount.Validate(input), ErrDiscountUserTypeBlocked)
	})

	t.Run("empty user type list admits anyone", func(t *testing.T) {
		discount := activeDiscount(eventID, now)
		input := baseInput
		input.UserType = users.TypeTransport
		assert.NoError(t, discount.Validate(input))
	})
}

func TestDiscountAmountFor(t *testing.T) {
	t.Run("percentage rounds to cents", func(t *testing.T) {
		discount := Discount{DiscountType: DiscountTypePercentage, Value: d("10")}
		assert.True(t, discount.AmountFor(d("9999")).Equal(d("999.90")))
	})

	t.Run("fixed amount taken as-is", func(t *testing.T) {
		discount := Discount{DiscountType: DiscountTypeFixed, Value: d("5000")}
		assert.True(t, discount.AmountFor(d("20000")).Equal(d("5000")))
	})

	t.Run("fixed amount capped at the base", func(t *testing.T) {
		discount := Discount{DiscountType: DiscountTypeFixed, Value: d("5000")}
		assert.True(t, discount.AmountFor(d("3000")).Equal(d("3000")))
	})

	t.Run("unknown type yields zero", func(t *testing.T) {
		discount := Discount{DiscountType: "bogus", Value: d("5000")}
		assert.True(t, discount.AmountFor(d("3000")).IsZero())
	})

	t.Run("negative value yields zero", func(t *testing.T) {
		discount := Discount{DiscountType: DiscountTypeFixed, Value: d("-100")}
		assert.True(t, discount.AmountFor(d("3000")).IsZero())
	})
}

func TestEligibleUserTypes(t *testing.T) {
	discount := Discount{ApplicableUserTypes: " client , cultor ,bogus"}
	types := discount.EligibleUserTypes()
	assert.Equal(t, []users.UserType{users.TypeClient, users.TypeCultor}, types)

	discount.ApplicableUserTypes = "   "
	assert.Nil(t, discount.EligibleUserTypes())
}
