package tickets

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Transaction(fn func(tx *gorm.DB) error) error

	Create(tx *gorm.DB, ticket *Ticket) error
	GetByID(id uuid.UUID) (*Ticket, error)
	GetByTicketNumber(ticketNumber uuid.UUID) (*Ticket, error)
	GetByUser(userID uuid.UUID, query TicketListQuery) ([]Ticket, int64, error)
	GetByEvent(eventID uuid.UUID) ([]Ticket, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Ticket, error)

	// GetByIDForUpdate locks the ticket row within tx. The payment flow
	// confirms tickets under this lock.
	GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Ticket, error)
	UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error

	CreateCancellation(tx *gorm.DB, cancellation *Cancellation) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *repository) Create(tx *gorm.DB, ticket *Ticket) error {
	return tx.Create(ticket).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.Where("id = ?", id).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByTicketNumber(ticketNumber uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.Where("ticket_number = ?", ticketNumber).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByUser(userID uuid.UUID, query TicketListQuery) ([]Ticket, int64, error) {
	var ticketList []Ticket
	var totalCount int64

	db := r.db.Model(&Ticket{}).Where("customer_id = ?", userID)

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
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

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&ticketList).Error

	return ticketList, totalCount, err
}

func (r *repository) GetByEvent(eventID uuid.UUID) ([]Ticket, error) {
	var ticketList []Ticket
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&ticketList).Error
	return ticketList, err
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Ticket, error) {
	var ticket Ticket

	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}

	updates["updated_at"] = time.Now()

	if err := r.db.Model(&ticket).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *repository) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return tx.Model(&Ticket{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) CreateCancellation(tx *gorm.DB, cancellation *Cancellation) error {
	return tx.Create(cancellation).Error
}
