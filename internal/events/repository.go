package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(event *Event) error
	GetByID(id uuid.UUID) (*Event, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Event, error)
	Delete(id uuid.UUID) error
	GetAll(query EventListQuery) ([]Event, int64, error)
	GetUpcoming(limit int) ([]Event, error)
	GetByCultor(cultorID uuid.UUID) ([]Event, error)
	UpdateStatus(id uuid.UUID, status EventStatus) error

	// SoldTicketCount sums the participants of every spot-holding ticket
	// (pending, confirmed or used)
	SoldTicketCount(eventID uuid.UUID) (int64, error)

	// GetByIDForUpdate locks the event row within tx until the transaction ends.
	// The allocator runs its capacity check under this lock.
	GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Event, error)

	// SoldTicketCountTx sums spot-holding participants inside tx
	SoldTicketCountTx(tx *gorm.DB, eventID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(event *Event) error {
	return r.db.Create(event).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	var event Event

	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&event).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Event{}).Error
}

func (r *repository) GetAll(query EventListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := r.db.Model(&Event{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if query.CategoryID != "" {
		db = db.Where("category_id = ?", query.CategoryID)
	}

	if query.LocationID != "" {
		db = db.Where("location_id = ?", query.LocationID)
	}

	if query.CultorID != "" {
		db = db.Where("cultor_id = ?", query.CultorID)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.Featured != nil {
		db = db.Where("featured = ?", *query.Featured)
	}

	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("start_datetime >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// Add 24 hours to include the entire day
			dateTo = dateTo.Add(24 * time.Hour)
			db = db.Where("start_datetime < ?", dateTo)
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("start_datetime ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&events).Error

	return events, totalCount, err
}

func (r *repository) GetUpcoming(limit int) ([]Event, error) {
	var events []Event
	now := time.Now()

	err := r.db.Where("start_datetime > ? AND status = ?", now, EventStatusPublished).
		Order("start_datetime ASC").
		Limit(limit).
		Find(&events).Error

	return events, err
}

func (r *repository) GetByCultor(cultorID uuid.UUID) ([]Event, error) {
	var events []Event
	err := r.db.Where("cultor_id = ?", cultorID).
		Order("start_datetime DESC").
		Find(&events).Error
	return events, err
}

func (r *repository) UpdateStatus(id uuid.UUID, status EventStatus) error {
	return r.db.Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

func (r *repository) SoldTicketCount(eventID uuid.UUID) (int64, error) {
	return r.SoldTicketCountTx(r.db, eventID)
}

func (r *repository) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Event, error) {
	var event Event
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) SoldTicketCountTx(tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Table("tickets").
		Select("COALESCE(SUM(participants_count), 0)").
		Where("event_id = ? AND status IN ?", eventID, []string{"pending", "confirmed", "used"}).
		Take(&count).Error
	return count, err
}
