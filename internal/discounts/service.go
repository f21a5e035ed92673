package discounts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"casaroja/internal/events"
	"casaroja/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateDiscount(req CreateDiscountRequest) (*DiscountResponse, error)
	GetDiscountByID(id uuid.UUID) (*DiscountResponse, error)
	UpdateDiscount(id uuid.UUID, req UpdateDiscountRequest) (*DiscountResponse, error)
	DeleteDiscount(id uuid.UUID) error
	GetDiscountsByEvent(eventID uuid.UUID) ([]DiscountResponse, error)

	// PreviewDiscount validates a code for a user without consuming a use
	PreviewDiscount(userID uuid.UUID, userType users.UserType, req PreviewDiscountRequest) (*DiscountPreviewResponse, error)

	// ResolveForPurchase validates a code during checkout and returns the
	// discount plus the computed deduction. The use is only consumed later,
	// when the payment completes.
	ResolveForPurchase(eventID, userID uuid.UUID, userType users.UserType, code string, basePrice decimal.Decimal) (*Discount, decimal.Decimal, error)
}

type service struct {
	repo      Repository
	eventRepo events.Repository
}

func NewService(repo Repository, eventRepo events.Repository) Service {
	return &service{repo: repo, eventRepo: eventRepo}
}

func (s *service) CreateDiscount(req CreateDiscountRequest) (*DiscountResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if IsNotFound(err) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	discountType := DiscountType(req.DiscountType)
	if !discountType.IsValid() {
		return nil, errors.New("invalid discount type")
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil || !value.IsPositive() {
		return nil, errors.New("discount value must be a positive number")
	}

	if discountType == DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("percentage discount cannot exceed 100")
	}

	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, errors.New("valid_until must be after valid_from")
	}

	minimumAmount := decimal.Zero
	if req.MinimumAmount != "" {
		minimumAmount, err = decimal.NewFromString(req.MinimumAmount)
		if err != nil || minimumAmount.IsNegative() {
			return nil, errors.New("invalid minimum amount")
		}
	}

	applicableTypes, err := normalizeUserTypes(req.ApplicableUserTypes)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if existing, err := s.repo.GetByCode(eventID, code); err == nil && existing != nil {
		return nil, errors.New("a discount with this code already exists for the event")
	}

	maxUsesPerUser := 1
	if req.MaxUsesPerUser != nil {
		maxUsesPerUser = *req.MaxUsesPerUser
	}

	discount := &Discount{
		EventID:             eventID,
		Code:                code,
		DiscountType:        discountType,
		Value:               value,
		MaxUses:             req.MaxUses,
		MaxUsesPerUser:      maxUsesPerUser,
		ValidFrom:           req.ValidFrom,
		ValidUntil:          req.ValidUntil,
		MinimumAmount:       minimumAmount,
		ApplicableUserTypes: applicableTypes,
		IsActive:            true,
	}

	if err := s.repo.Create(discount); err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}

	response := discount.ToResponse()
	return &response, nil
}

func (s *service) GetDiscountByID(id uuid.UUID) (*DiscountResponse, error) {
	discount, err := s.repo.GetByID(id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}

	response := discount.ToResponse()
	return &response, nil
}

func (s *service) UpdateDiscount(id uuid.UUID, req UpdateDiscountRequest) (*DiscountResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}

	updates := make(map[string]interface{})

	if req.MaxUses != nil {
		if *req.MaxUses != 0 && *req.MaxUses < current.UsedCount {
			return nil, fmt.Errorf("max uses cannot be below the %d uses already consumed", current.UsedCount)
		}
		updates["max_uses"] = *req.MaxUses
	}
	if req.MaxUsesPerUser != nil {
		updates["max_uses_per_user"] = *req.MaxUsesPerUser
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.MinimumAmount != nil {
		minimumAmount, err := decimal.NewFromString(*req.MinimumAmount)
		if err != nil || minimumAmount.IsNegative() {
			return nil, errors.New("invalid minimum amount")
		}
		updates["minimum_amount"] = minimumAmount
	}
	if req.ApplicableUserTypes != nil {
		applicableTypes, err := normalizeUserTypes(req.ApplicableUserTypes)
		if err != nil {
			return nil, err
		}
		updates["applicable_user_types"] = applicableTypes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update discount: %w", err)
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteDiscount(id uuid.UUID) error {
	discount, err := s.repo.GetByID(id)
	if err != nil {
		if IsNotFound(err) {
			return ErrDiscountNotFound
		}
		return fmt.Errorf("failed to get discount: %w", err)
	}

	if discount.UsedCount > 0 {
		return errors.New("cannot delete a discount that has been redeemed; deactivate it instead")
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}

	return nil
}

func (s *service) GetDiscountsByEvent(eventID uuid.UUID) ([]DiscountResponse, error) {
	discounts, err := s.repo.GetByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get discounts: %w", err)
	}

	responses := make([]DiscountResponse, len(discounts))
	for i, discount := range discounts {
		responses[i] = discount.ToResponse()
	}

	return responses, nil
}

func (s *service) PreviewDiscount(userID uuid.UUID, userType users.UserType, req PreviewDiscountRequest) (*DiscountPreviewResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if IsNotFound(err) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	discount, deduction, err := s.ResolveForPurchase(eventID, userID, userType, req.Code, event.BasePrice)
	if err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			return nil, err
		}
		// Validation failures are reported in the preview body, not as errors
		return &DiscountPreviewResponse{
			Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
			BasePrice: event.BasePrice,
			Valid:     false,
			Reason:    err.Error(),
		}, nil
	}

	return &DiscountPreviewResponse{
		DiscountID:     discount.ID.String(),
		Code:           discount.Code,
		DiscountType:   discount.DiscountType,
		BasePrice:      event.BasePrice,
		DiscountAmount: deduction,
		Valid:          true,
	}, nil
}

func (s *service) ResolveForPurchase(eventID, userID uuid.UUID, userType users.UserType, code string, basePrice decimal.Decimal) (*Discount, decimal.Decimal, error) {
	discount, err := s.repo.GetByCode(eventID, code)
	if err != nil {
		if IsNotFound(err) {
			return nil, decimal.Zero, ErrDiscountNotFound
		}
		return nil, decimal.Zero, fmt.Errorf("failed to get discount: %w", err)
	}

	userRedemptions, err := s.repo.CountUserRedemptions(discount.ID, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to count redemptions: %w", err)
	}

	input := ValidationInput{
		EventID:         eventID,
		UserType:        userType,
		UserRedemptions: userRedemptions,
		BaseAmount:      basePrice,
		Now:             time.Now(),
	}

	if err := discount.Validate(input); err != nil {
		return nil, decimal.Zero, err
	}

	return discount, discount.AmountFor(basePrice), nil
}

func normalizeUserTypes(raw []string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var cleaned []string
	for _, value := range raw {
		userType := users.UserType(strings.TrimSpace(strings.ToLower(value)))
		if !userType.IsValid() {
			return "", fmt.Errorf("invalid user type: %s", value)
		}
		cleaned = append(cleaned, string(userType))
	}

	return strings.Join(cleaned, ","), nil
}
