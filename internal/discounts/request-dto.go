package discounts

import "time"

type CreateDiscountRequest struct {
	EventID             string    `json:"event_id" binding:"required,uuid"`
	Code                string    `json:"code" binding:"required,min=3,max=50"`
	DiscountType        string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value               string    `json:"value" binding:"required"`
	MaxUses             int       `json:"max_uses" binding:"omitempty,min=0"`
	MaxUsesPerUser      *int      `json:"max_uses_per_user" binding:"omitempty,min=0"`
	ValidFrom           time.Time `json:"valid_from" binding:"required"`
	ValidUntil          time.Time `json:"valid_until" binding:"required"`
	MinimumAmount       string    `json:"minimum_amount"`
	ApplicableUserTypes []string  `json:"applicable_user_types"`
}

type UpdateDiscountRequest struct {
	MaxUses             *int       `json:"max_uses" binding:"omitempty,min=0"`
	MaxUsesPerUser      *int       `json:"max_uses_per_user" binding:"omitempty,min=0"`
	ValidFrom           *time.Time `json:"valid_from"`
	ValidUntil          *time.Time `json:"valid_until"`
	MinimumAmount       *string    `json:"minimum_amount"`
	ApplicableUserTypes []string   `json:"applicable_user_types"`
	IsActive            *bool      `json:"is_active"`
}

type PreviewDiscountRequest struct {
	EventID string `json:"event_id" binding:"required,uuid"`
	Code    string `json:"code" binding:"required"`
}
