package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"casaroja/internal/shared/constants"
	"casaroja/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidTransition = errors.New("invalid event status transition")
)

type Service interface {
	CreateEvent(creatorID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	UpdateEvent(id uuid.UUID, updaterID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(id uuid.UUID) error
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)
	GetEventsByCultor(cultorID uuid.UUID) ([]EventResponse, error)

	// Lifecycle transitions
	PublishEvent(id uuid.UUID) (*EventResponse, error)
	CancelEvent(id uuid.UUID) (*EventResponse, error)
	CompleteEvent(id uuid.UUID) (*EventResponse, error)

	// AvailableSpots returns the number of spots not yet held by a ticket
	AvailableSpots(ctx context.Context, eventID uuid.UUID) (int, error)

	// InvalidateEventCache drops cached listings and spot counts.
	// Called by the ticket service after a purchase or cancellation.
	InvalidateEventCache(ctx context.Context, eventID uuid.UUID)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) CreateEvent(creatorID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return nil, errors.New("invalid base price format")
	}
	if basePrice.IsNegative() {
		return nil, errors.New("base price cannot be negative")
	}

	if !req.EndDatetime.After(req.StartDatetime) {
		return nil, errors.New("end datetime must be after start datetime")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, errors.New("invalid category ID")
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, errors.New("invalid location ID")
	}
	cultorID, err := uuid.Parse(req.CultorID)
	if err != nil {
		return nil, errors.New("invalid cultor ID")
	}

	minParticipants := req.MinParticipants
	if minParticipants == 0 {
		minParticipants = 1
	}
	if minParticipants > req.MaxParticipants {
		return nil, errors.New("min participants cannot exceed max participants")
	}

	allowsCancellation := true
	if req.AllowsCancellation != nil {
		allowsCancellation = *req.AllowsCancellation
	}

	cancellationHours := 24
	if req.CancellationHours != nil {
		cancellationHours = *req.CancellationHours
	}

	event := &Event{
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		EventType:          strings.TrimSpace(req.EventType),
		CategoryID:         categoryID,
		LocationID:         locationID,
		CultorID:           cultorID,
		StartDatetime:      req.StartDatetime,
		EndDatetime:        req.EndDatetime,
		BasePrice:          basePrice,
		MaxParticipants:    req.MaxParticipants,
		MinParticipants:    minParticipants,
		RequiresTransport:  req.RequiresTransport,
		Status:             EventStatusDraft,
		AllowsCancellation: allowsCancellation,
		CancellationHours:  cancellationHours,
		Featured:           req.Featured,
		ImageURL:           req.ImageURL,
		CreatedBy:          creatorID,
	}

	if err := s.repo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateListCache()

	response := event.ToResponse()
	response.AvailableSpots = event.MaxParticipants
	return &response, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	var cached EventResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			// Spot counts are cached separately with a short TTL
			if spots, err := s.AvailableSpots(ctx, id); err == nil {
				cached.AvailableSpots = spots
			}
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	response := event.ToResponse()

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL)
	}

	if spots, err := s.AvailableSpots(ctx, id); err == nil {
		response.AvailableSpots = spots
	}

	return &response, nil
}

func (s *service) UpdateEvent(id uuid.UUID, updaterID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("cannot update event in %s status", current.Status)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.EventType != nil {
		updates["event_type"] = strings.TrimSpace(*req.EventType)
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category ID")
		}
		updates["category_id"] = categoryID
	}
	if req.LocationID != nil {
		locationID, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, errors.New("invalid location ID")
		}
		updates["location_id"] = locationID
	}
	if req.StartDatetime != nil {
		updates["start_datetime"] = *req.StartDatetime
	}
	if req.EndDatetime != nil {
		updates["end_datetime"] = *req.EndDatetime
	}
	if req.BasePrice != nil {
		basePrice, err := decimal.NewFromString(*req.BasePrice)
		if err != nil || basePrice.IsNegative() {
			return nil, errors.New("invalid base price")
		}
		updates["base_price"] = basePrice
	}
	if req.MaxParticipants != nil {
		sold, err := s.repo.SoldTicketCount(id)
		if err != nil {
			return nil, fmt.Errorf("failed to count sold tickets: %w", err)
		}
		if int64(*req.MaxParticipants) < sold {
			return nil, fmt.Errorf("cannot reduce capacity below %d already sold tickets", sold)
		}
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.MinParticipants != nil {
		updates["min_participants"] = *req.MinParticipants
	}
	if req.RequiresTransport != nil {
		updates["requires_transport"] = *req.RequiresTransport
	}
	if req.AllowsCancellation != nil {
		updates["allows_cancellation"] = *req.AllowsCancellation
	}
	if req.CancellationHours != nil {
		updates["cancellation_hours"] = *req.CancellationHours
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	updates["updated_by"] = updaterID
	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.InvalidateEventCache(context.Background(), id)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteEvent(id uuid.UUID) error {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.Status != EventStatusDraft {
		return errors.New("only draft events can be deleted; cancel published events instead")
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.InvalidateEventCache(context.Background(), id)
	return nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	// Only unfiltered listings are cached; filtered queries go to the database
	cacheable := query.Search == "" && query.CategoryID == "" && query.LocationID == "" &&
		query.CultorID == "" && query.DateFrom == "" && query.DateTo == "" && query.Featured == nil

	cacheKey := constants.BuildEventListKey(query.Page, query.Limit, query.Status)

	if cacheable && s.cache != nil {
		var cached PaginatedEvents
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	eventList, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	responses := make([]EventResponse, len(eventList))
	for i, event := range eventList {
		responses[i] = event.ToResponse()
		if spots, err := s.AvailableSpots(ctx, event.ID); err == nil {
			responses[i].AvailableSpots = spots
		}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	result := &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}

	if cacheable && s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, result, constants.TTL_EVENT_LIST)
	}

	return result, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	eventList, err := s.repo.GetUpcoming(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}

	responses := make([]EventResponse, len(eventList))
	for i, event := range eventList {
		responses[i] = event.ToResponse()
		if spots, err := s.AvailableSpots(ctx, event.ID); err == nil {
			responses[i].AvailableSpots = spots
		}
	}

	return responses, nil
}

func (s *service) GetEventsByCultor(cultorID uuid.UUID) ([]EventResponse, error) {
	eventList, err := s.repo.GetByCultor(cultorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cultor events: %w", err)
	}

	responses := make([]EventResponse, len(eventList))
	for i, event := range eventList {
		responses[i] = event.ToResponse()
	}

	return responses, nil
}

func (s *service) PublishEvent(id uuid.UUID) (*EventResponse, error) {
	return s.transition(id, EventStatusPublished)
}

func (s *service) CancelEvent(id uuid.UUID) (*EventResponse, error) {
	return s.transition(id, EventStatusCancelled)
}

func (s *service) CompleteEvent(id uuid.UUID) (*EventResponse, error) {
	return s.transition(id, EventStatusCompleted)
}

func (s *service) transition(id uuid.UUID, target EventStatus) (*EventResponse, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if !event.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, event.Status, target)
	}

	if err := s.repo.UpdateStatus(id, target); err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}

	s.InvalidateEventCache(context.Background(), id)

	event.Status = target
	response := event.ToResponse()
	return &response, nil
}

func (s *service) AvailableSpots(ctx context.Context, eventID uuid.UUID) (int, error) {
	cacheKey := constants.BuildEventSpotsKey(eventID.String())

	var cached int
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	event, err := s.repo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, fmt.Errorf("failed to get event: %w", err)
	}

	sold, err := s.repo.SoldTicketCount(eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to count sold tickets: %w", err)
	}

	spots := event.MaxParticipants - int(sold)
	if spots < 0 {
		spots = 0
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, spots, constants.TTL_EVENT_SPOTS)
	}

	return spots, nil
}

func (s *service) InvalidateEventCache(ctx context.Context, eventID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, constants.BuildEventDetailKey(eventID.String()))
	_ = s.cache.Delete(ctx, constants.BuildEventSpotsKey(eventID.String()))
	s.invalidateListCache()
}

func (s *service) invalidateListCache() {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(context.Background(), constants.CACHE_KEY_EVENTS_LIST+"*")
	_ = s.cache.DeletePattern(context.Background(), constants.CACHE_KEY_EVENTS_UPCOMING+"*")
}
