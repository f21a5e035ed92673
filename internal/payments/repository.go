package payments

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Transaction(fn func(tx *gorm.DB) error) error

	Create(payment *Payment) error
	GetByID(id uuid.UUID) (*Payment, error)
	GetByTicket(ticketID uuid.UUID) ([]Payment, error)
	GetByUser(userID uuid.UUID) ([]Payment, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Payment, error)

	// GetByIDForUpdate locks the payment row within tx; the webhook
	// handler settles payments under this lock so retries stay idempotent
	GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Payment, error)
	UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error

	CommissionExistsTx(tx *gorm.DB, paymentID uuid.UUID) (bool, error)
	CreateCommissionTx(tx *gorm.DB, commission *Commission) error
	GetCommissionByPayment(paymentID uuid.UUID) (*Commission, error)
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

func (r *repository) Create(payment *Payment) error {
	return r.db.Create(payment).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) GetByTicket(ticketID uuid.UUID) ([]Payment, error) {
	var paymentList []Payment
	err := r.db.Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&paymentList).Error
	return paymentList, err
}

func (r *repository) GetByUser(userID uuid.UUID) ([]Payment, error) {
	var paymentList []Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&paymentList).Error
	return paymentList, err
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Payment, error) {
	var payment Payment

	if err := r.db.Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}

	updates["updated_at"] = time.Now()

	if err := r.db.Model(&payment).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *repository) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*Payment, error) {
	var payment Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return tx.Model(&Payment{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) CommissionExistsTx(tx *gorm.DB, paymentID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&Commission{}).Where("payment_id = ?", paymentID).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateCommissionTx(tx *gorm.DB, commission *Commission) error {
	return tx.Create(commission).Error
}

func (r *repository) GetCommissionByPayment(paymentID uuid.UUID) (*Commission, error) {
	var commission Commission
	err := r.db.Where("payment_id = ?", paymentID).First(&commission).Error
	if err != nil {
		return nil, err
	}
	return &commission, nil
}
