package discounts

import (
	"strings"
	"time"

	"casaroja/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// Discount is a promotional code attached to a single event
type Discount struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_discount_event_code"`
	Code    string    `json:"code" gorm:"not null;size:50;uniqueIndex:idx_discount_event_code"`

	DiscountType DiscountType    `json:"discount_type" gorm:"type:varchar(20);not null"`
	Value        decimal.Decimal `json:"value" gorm:"type:numeric(12,2);not null"`

	MaxUses        int `json:"max_uses" gorm:"default:0"`          // 0 means unlimited
	UsedCount      int `json:"used_count" gorm:"default:0"`
	MaxUsesPerUser int `json:"max_uses_per_user" gorm:"default:1"` // 0 means unlimited

	ValidFrom  time.Time `json:"valid_from" gorm:"not null"`
	ValidUntil time.Time `json:"valid_until" gorm:"not null"`

	MinimumAmount decimal.Decimal `json:"minimum_amount" gorm:"type:numeric(12,2);default:0"`

	// Comma-separated list of eligible user types; empty means any
	ApplicableUserTypes string `json:"applicable_user_types" gorm:"size:200"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Redemption records one consumed use of a discount, written when the
// associated payment completes
type Redemption struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	DiscountID uuid.UUID `json:"discount_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	TicketID   uuid.UUID `json:"ticket_id" gorm:"type:uuid;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// EligibleUserTypes parses the stored applicable user type list
func (d *Discount) EligibleUserTypes() []users.UserType {
	if strings.TrimSpace(d.ApplicableUserTypes) == "" {
		return nil
	}

	parts := strings.Split(d.ApplicableUserTypes, ",")
	var types []users.UserType
	for _, part := range parts {
		trimmed := users.UserType(strings.TrimSpace(part))
		if trimmed.IsValid() {
			types = append(types, trimmed)
		}
	}
	return types
}

// HasUsesRemaining reports whether the global usage cap allows another redemption
func (d *Discount) HasUsesRemaining() bool {
	return d.MaxUses == 0 || d.UsedCount < d.MaxUses
}

func (d *Discount) ToResponse() DiscountResponse {
	return DiscountResponse{
		ID:                  d.ID.String(),
		EventID:             d.EventID.String(),
		Code:                d.Code,
		DiscountType:        d.DiscountType,
		Value:               d.Value,
		MaxUses:             d.MaxUses,
		UsedCount:           d.UsedCount,
		MaxUsesPerUser:      d.MaxUsesPerUser,
		ValidFrom:           d.ValidFrom,
		ValidUntil:          d.ValidUntil,
		MinimumAmount:       d.MinimumAmount,
		ApplicableUserTypes: d.ApplicableUserTypes,
		IsActive:            d.IsActive,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

func (Redemption) TableName() string {
	return "discount_redemptions"
}
