package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	EventType   string    `json:"event_type" gorm:"size:50"`

	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	LocationID uuid.UUID `json:"location_id" gorm:"type:uuid;not null;index"`
	CultorID   uuid.UUID `json:"cultor_id" gorm:"type:uuid;not null;index"`

	StartDatetime time.Time `json:"start_datetime" gorm:"not null;index"`
	EndDatetime   time.Time `json:"end_datetime" gorm:"not null"`

	BasePrice         decimal.Decimal `json:"base_price" gorm:"type:numeric(12,2);not null"`
	MaxParticipants   int             `json:"max_participants" gorm:"not null;check:max_participants > 0"`
	MinParticipants   int             `json:"min_participants" gorm:"default:1"`
	RequiresTransport bool            `json:"requires_transport" gorm:"default:false"`

	Status EventStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`

	AllowsCancellation bool `json:"allows_cancellation" gorm:"default:true"`
	CancellationHours  int  `json:"cancellation_hours" gorm:"default:24"`

	Featured bool   `json:"featured" gorm:"default:false"`
	ImageURL string `json:"image_url" gorm:"size:500"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	EventType          string          `json:"event_type"`
	CategoryID         string          `json:"category_id"`
	LocationID         string          `json:"location_id"`
	CultorID           string          `json:"cultor_id"`
	StartDatetime      time.Time       `json:"start_datetime"`
	EndDatetime        time.Time       `json:"end_datetime"`
	BasePrice          decimal.Decimal `json:"base_price"`
	MaxParticipants    int             `json:"max_participants"`
	MinParticipants    int             `json:"min_participants"`
	RequiresTransport  bool            `json:"requires_transport"`
	Status             EventStatus     `json:"status"`
	AllowsCancellation bool            `json:"allows_cancellation"`
	CancellationHours  int             `json:"cancellation_hours"`
	Featured           bool            `json:"featured"`
	ImageURL           string          `json:"image_url"`
	AvailableSpots     int             `json:"available_spots"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type CreateEventRequest struct {
	Title              string    `json:"title" binding:"required,min=3,max=255"`
	Description        string    `json:"description" binding:"max=2000"`
	EventType          string    `json:"event_type" binding:"omitempty,max=50"`
	CategoryID         string    `json:"category_id" binding:"required,uuid"`
	LocationID         string    `json:"location_id" binding:"required,uuid"`
	CultorID           string    `json:"cultor_id" binding:"required,uuid"`
	StartDatetime      time.Time `json:"start_datetime" binding:"required"`
	EndDatetime        time.Time `json:"end_datetime" binding:"required"`
	BasePrice          string    `json:"base_price" binding:"required"`
	MaxParticipants    int       `json:"max_participants" binding:"required,min=1,max=100000"`
	MinParticipants    int       `json:"min_participants" binding:"omitempty,min=1"`
	RequiresTransport  bool      `json:"requires_transport"`
	AllowsCancellation *bool     `json:"allows_cancellation"`
	CancellationHours  *int      `json:"cancellation_hours" binding:"omitempty,min=0"`
	Featured           bool      `json:"featured"`
	ImageURL           string    `json:"image_url" binding:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title              *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description        *string    `json:"description" binding:"omitempty,max=2000"`
	EventType          *string    `json:"event_type" binding:"omitempty,max=50"`
	CategoryID         *string    `json:"category_id" binding:"omitempty,uuid"`
	LocationID         *string    `json:"location_id" binding:"omitempty,uuid"`
	StartDatetime      *time.Time `json:"start_datetime"`
	EndDatetime        *time.Time `json:"end_datetime"`
	BasePrice          *string    `json:"base_price"`
	MaxParticipants    *int       `json:"max_participants" binding:"omitempty,min=1,max=100000"`
	MinParticipants    *int       `json:"min_participants" binding:"omitempty,min=1"`
	RequiresTransport  *bool      `json:"requires_transport"`
	AllowsCancellation *bool      `json:"allows_cancellation"`
	CancellationHours  *int       `json:"cancellation_hours" binding:"omitempty,min=0"`
	Featured           *bool      `json:"featured"`
	ImageURL           *string    `json:"image_url" binding:"omitempty,url"`
}

type EventListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	CultorID   string `form:"cultor_id" binding:"omitempty,uuid"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Status     string `form:"status" binding:"omitempty,oneof=draft published sold_out cancelled completed"`
	Featured   *bool  `form:"featured"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ToResponse converts an Event to its API representation.
// AvailableSpots is filled in by the service from the live ticket count.
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:                 e.ID.String(),
		Title:              e.Title,
		Description:        e.Description,
		EventType:          e.EventType,
		CategoryID:         e.CategoryID.String(),
		LocationID:         e.LocationID.String(),
		CultorID:           e.CultorID.String(),
		StartDatetime:      e.StartDatetime,
		EndDatetime:        e.EndDatetime,
		BasePrice:          e.BasePrice,
		MaxParticipants:    e.MaxParticipants,
		MinParticipants:    e.MinParticipants,
		RequiresTransport:  e.RequiresTransport,
		Status:             e.Status,
		AllowsCancellation: e.AllowsCancellation,
		CancellationHours:  e.CancellationHours,
		Featured:           e.Featured,
		ImageURL:           e.ImageURL,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
