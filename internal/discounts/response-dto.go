package discounts

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountResponse struct {
	ID                  string          `json:"id"`
	EventID             string          `json:"event_id"`
	Code                string          `json:"code"`
	DiscountType        DiscountType    `json:"discount_type"`
	Value               decimal.Decimal `json:"value"`
	MaxUses             int             `json:"max_uses"`
	UsedCount           int             `json:"used_count"`
	MaxUsesPerUser      int             `json:"max_uses_per_user"`
	ValidFrom           time.Time       `json:"valid_from"`
	ValidUntil          time.Time       `json:"valid_until"`
	MinimumAmount       decimal.Decimal `json:"minimum_amount"`
	ApplicableUserTypes string          `json:"applicable_user_types"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type DiscountPreviewResponse struct {
	DiscountID     string          `json:"discount_id"`
	Code           string          `json:"code"`
	DiscountType   DiscountType    `json:"discount_type"`
	BasePrice      decimal.Decimal `json:"base_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Valid          bool            `json:"valid"`
	Reason         string          `json:"reason,omitempty"`
}
