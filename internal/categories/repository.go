package categories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(category *Category) error
	GetByID(id uuid.UUID) (*Category, error)
	GetBySlug(slug string) (*Category, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Category, error)
	Delete(id uuid.UUID) error
	GetActive() ([]Category, error)
	GetAll() ([]Category, error)
	CountEvents(categoryID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(category *Category) error {
	return r.db.Create(category).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Category, error) {
	var category Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetBySlug(slug string) (*Category, error) {
	var category Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Category, error) {
	var category Category

	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&category).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Category{}).Error
}

func (r *repository) GetActive() ([]Category, error) {
	var categories []Category
	err := r.db.Where("is_active = ?", true).Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *repository) GetAll() ([]Category, error) {
	var categories []Category
	err := r.db.Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *repository) CountEvents(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("events").Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
