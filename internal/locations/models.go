package locations

import (
	"time"

	"github.com/google/uuid"
)

// Location represents a physical venue where events take place
type Location struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	Address   string    `json:"address" gorm:"not null;size:300"`
	City      string    `json:"city" gorm:"not null;size:100;index"`
	Region    string    `json:"region" gorm:"size:100"`
	Country   string    `json:"country" gorm:"size:100;default:'Chile'"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (l *Location) ToResponse() LocationResponse {
	return LocationResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Address:   l.Address,
		City:      l.City,
		Region:    l.Region,
		Country:   l.Country,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Location) TableName() string {
	return "locations"
}
