package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"casaroja/internal/shared/constants"
	"casaroja/internal/users"
	"casaroja/pkg/cache"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrNotEventCultor = errors.New("analytics are only visible to the event's cultor")
)

type Service interface {
	GetEventRevenue(ctx context.Context, eventID, callerID uuid.UUID, callerType users.UserType) (*EventRevenue, error)
	GetCultorEarnings(ctx context.Context, cultorID uuid.UUID) (*CultorEarnings, error)
	GetPlatformOverview(ctx context.Context) (*PlatformOverview, error)
}

type service struct {
	repo  Repository
	db    *gorm.DB
	cache cache.Service
}

func NewService(repo Repository, db *gorm.DB, cacheService cache.Service) Service {
	return &service{repo: repo, db: db, cache: cacheService}
}

func (s *service) GetEventRevenue(ctx context.Context, eventID, callerID uuid.UUID, callerType users.UserType) (*EventRevenue, error) {
	// Cultors only see their own events; managers see everything
	if callerType != users.TypeManager {
		var cultorID uuid.UUID
		err := s.db.Table("events").
			Select("cultor_id").
			Where("id = ?", eventID).
			Take(&cultorID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, fmt.Errorf("failed to get event: %w", err)
		}
		if cultorID != callerID {
			return nil, ErrNotEventCultor
		}
	}

	cacheKey := constants.BuildEventRevenueKey(eventID.String())

	var cached EventRevenue
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	revenue, err := s.repo.GetEventRevenue(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event revenue: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, revenue, constants.TTL_ANALYTICS_EVENT)
	}

	return revenue, nil
}

func (s *service) GetCultorEarnings(ctx context.Context, cultorID uuid.UUID) (*CultorEarnings, error) {
	cacheKey := constants.BuildCultorEarningsKey(cultorID.String())

	var cached CultorEarnings
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	earnings, err := s.repo.GetCultorEarnings(cultorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cultor earnings: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, earnings, constants.TTL_ANALYTICS_CULTOR)
	}

	return earnings, nil
}

func (s *service) GetPlatformOverview(ctx context.Context) (*PlatformOverview, error) {
	var cached PlatformOverview
	if s.cache != nil {
		if err := s.cache.Get(ctx, constants.CACHE_KEY_ANALYTICS_PLATFORM, &cached); err == nil {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetPlatformOverview()
	if err != nil {
		return nil, fmt.Errorf("failed to get platform overview: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, constants.CACHE_KEY_ANALYTICS_PLATFORM, overview, constants.TTL_ANALYTICS_PLATFORM)
	}

	return overview, nil
}
