package discounts

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(discount *Discount) error
	GetByID(id uuid.UUID) (*Discount, error)
	GetByCode(eventID uuid.UUID, code string) (*Discount, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Discount, error)
	Delete(id uuid.UUID) error
	GetByEvent(eventID uuid.UUID) ([]Discount, error)

	CountUserRedemptions(discountID, userID uuid.UUID) (int64, error)

	// RedeemTx records a redemption and increments used_count inside tx,
	// holding the discount row lock so the global cap cannot be oversubscribed
	RedeemTx(tx *gorm.DB, discountID, userID, ticketID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(discount *Discount) error {
	return r.db.Create(discount).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Discount, error) {
	var discount Discount
	err := r.db.Where("id = ?", id).First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *repository) GetByCode(eventID uuid.UUID, code string) (*Discount, error) {
	var discount Discount
	err := r.db.Where("event_id = ? AND UPPER(code) = UPPER(?)", eventID, strings.TrimSpace(code)).
		First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Discount, error) {
	var discount Discount

	if err := r.db.Where("id = ?", id).First(&discount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&discount).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&discount).Error; err != nil {
		return nil, err
	}

	return &discount, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Discount{}).Error
}

func (r *repository) GetByEvent(eventID uuid.UUID) ([]Discount, error) {
	var discounts []Discount
	err := r.db.Where("event_id = ?", eventID).Order("created_at DESC").Find(&discounts).Error
	return discounts, err
}

func (r *repository) CountUserRedemptions(discountID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Redemption{}).
		Where("discount_id = ? AND user_id = ?", discountID, userID).
		Count(&count).Error
	return count, err
}

func (r *repository) RedeemTx(tx *gorm.DB, discountID, userID, ticketID uuid.UUID) error {
	var discount Discount

	// Lock the discount row; the used_count check and increment must be atomic
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", discountID).
		First(&discount).Error; err != nil {
		return err
	}

	if !discount.HasUsesRemaining() {
		return ErrDiscountExhausted
	}

	if discount.MaxUsesPerUser > 0 {
		var userCount int64
		if err := tx.Model(&Redemption{}).
			Where("discount_id = ? AND user_id = ?", discountID, userID).
			Count(&userCount).Error; err != nil {
			return err
		}
		if userCount >= int64(discount.MaxUsesPerUser) {
			return ErrDiscountUserLimit
		}
	}

	redemption := &Redemption{
		DiscountID: discountID,
		UserID:     userID,
		TicketID:   ticketID,
	}
	if err := tx.Create(redemption).Error; err != nil {
		return err
	}

	return tx.Model(&discount).
		Update("used_count", gorm.Expr("used_count + 1")).Error
}

// IsNotFound reports whether err is the GORM record-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
