package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"casaroja/internal/shared/constants"
	"casaroja/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateLocation(req CreateLocationRequest) (*LocationResponse, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error)
	UpdateLocation(id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error)
	DeleteLocation(id uuid.UUID) error
	GetActiveLocations(ctx context.Context) ([]LocationResponse, error)
	GetLocationsByCity(city string) ([]LocationResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) CreateLocation(req CreateLocationRequest) (*LocationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("location name cannot be empty")
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = "Chile"
	}

	location := &Location{
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		Region:    strings.TrimSpace(req.Region),
		Country:   country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  true,
	}

	if err := s.repo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.invalidateCache()

	response := location.ToResponse()
	return &response, nil
}

func (s *service) GetLocationByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	cacheKey := constants.CACHE_KEY_LOCATION_BY_ID + id.String()

	var cached LocationResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	location, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("location not found")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	response := location.ToResponse()

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, constants.TTL_LOCATION_DETAIL)
	}

	return &response, nil
}

func (s *service) UpdateLocation(id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("location not found")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("location name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		updates["city"] = strings.TrimSpace(*req.City)
	}
	if req.Region != nil {
		updates["region"] = strings.TrimSpace(*req.Region)
	}
	if req.Country != nil {
		updates["country"] = strings.TrimSpace(*req.Country)
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	s.invalidateCache()

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteLocation(id uuid.UUID) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("location not found")
		}
		return fmt.Errorf("failed to get location: %w", err)
	}

	eventCount, err := s.repo.CountEvents(id)
	if err != nil {
		return fmt.Errorf("failed to check location usage: %w", err)
	}

	if eventCount > 0 {
		return fmt.Errorf("cannot delete location as it is being used by %d event(s). Consider deactivating it instead", eventCount)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	s.invalidateCache()
	return nil
}

func (s *service) GetActiveLocations(ctx context.Context) ([]LocationResponse, error) {
	var cached []LocationResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, constants.CACHE_KEY_LOCATIONS_ACTIVE, &cached); err == nil {
			return cached, nil
		}
	}

	locations, err := s.repo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get active locations: %w", err)
	}

	responses := make([]LocationResponse, len(locations))
	for i, location := range locations {
		responses[i] = location.ToResponse()
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, constants.CACHE_KEY_LOCATIONS_ACTIVE, responses, constants.TTL_LOCATIONS_ACTIVE)
	}

	return responses, nil
}

func (s *service) GetLocationsByCity(city string) ([]LocationResponse, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.New("city cannot be empty")
	}

	locations, err := s.repo.GetByCity(city)
	if err != nil {
		return nil, fmt.Errorf("failed to get locations by city: %w", err)
	}

	responses := make([]LocationResponse, len(locations))
	for i, location := range locations {
		responses[i] = location.ToResponse()
	}

	return responses, nil
}

func (s *service) invalidateCache() {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(context.Background(), constants.PATTERN_INVALIDATE_LOCATIONS)
}
