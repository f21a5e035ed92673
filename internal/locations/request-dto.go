package locations

type CreateLocationRequest struct {
	Name      string   `json:"name" binding:"required,min=2,max=200"`
	Address   string   `json:"address" binding:"required,min=5,max=300"`
	City      string   `json:"city" binding:"required,min=2,max=100"`
	Region    string   `json:"region" binding:"omitempty,max=100"`
	Country   string   `json:"country" binding:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type UpdateLocationRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=2,max=200"`
	Address   *string  `json:"address" binding:"omitempty,min=5,max=300"`
	City      *string  `json:"city" binding:"omitempty,min=2,max=100"`
	Region    *string  `json:"region" binding:"omitempty,max=100"`
	Country   *string  `json:"country" binding:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	IsActive  *bool    `json:"is_active"`
}
