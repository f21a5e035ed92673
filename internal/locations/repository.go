package locations

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(location *Location) error
	GetByID(id uuid.UUID) (*Location, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Location, error)
	Delete(id uuid.UUID) error
	GetActive() ([]Location, error)
	GetByCity(city string) ([]Location, error)
	CountEvents(locationID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(location *Location) error {
	return r.db.Create(location).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Location, error) {
	var location Location
	err := r.db.Where("id = ?", id).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Location, error) {
	var location Location

	if err := r.db.Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&location).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Location{}).Error
}

func (r *repository) GetActive() ([]Location, error) {
	var locations []Location
	err := r.db.Where("is_active = ?", true).Order("city asc, name asc").Find(&locations).Error
	return locations, err
}

func (r *repository) GetByCity(city string) ([]Location, error) {
	var locations []Location
	err := r.db.Where("is_active = ? AND LOWER(city) = LOWER(?)", true, city).Order("name asc").Find(&locations).Error
	return locations, err
}

func (r *repository) CountEvents(locationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("events").Where("location_id = ?", locationID).Count(&count).Error
	return count, err
}
