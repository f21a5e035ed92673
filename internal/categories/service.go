package categories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"casaroja/internal/shared/constants"
	"casaroja/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateCategory(req CreateCategoryRequest) (*CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	GetCategoryBySlug(slug string) (*CategoryResponse, error)
	UpdateCategory(id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(id uuid.UUID) error
	GetActiveCategories(ctx context.Context) ([]CategoryResponse, error)
	GetAllCategories() ([]CategoryResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

// generateSlug converts a category name to a URL-friendly slug
func generateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^\w\s-]`)
	slug = reg.ReplaceAllString(slug, "")

	reg = regexp.MustCompile(`[\s-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func (s *service) CreateCategory(req CreateCategoryRequest) (*CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}

	slug := generateSlug(name)
	if slug == "" {
		return nil, errors.New("category name must contain at least one alphanumeric character")
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil {
		return nil, errors.New("a category with similar name already exists")
	}

	category := &Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Icon:        strings.TrimSpace(req.Icon),
		IsActive:    true,
	}

	if err := s.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCache()

	response := category.ToResponse()
	return &response, nil
}

func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	cacheKey := constants.CACHE_KEY_CATEGORY_BY_ID + id.String()

	var cached CategoryResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	response := category.ToResponse()

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, constants.TTL_CATEGORY_DETAIL)
	}

	return &response, nil
}

func (s *service) GetCategoryBySlug(slug string) (*CategoryResponse, error) {
	category, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	response := category.ToResponse()
	return &response, nil
}

func (s *service) UpdateCategory(id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("category name cannot be empty")
		}

		slug := generateSlug(name)
		if slug == "" {
			return nil, errors.New("category name must contain at least one alphanumeric character")
		}

		if slug != current.Slug {
			existing, err := s.repo.GetBySlug(slug)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check existing category: %w", err)
			}
			if existing != nil && existing.ID != current.ID {
				return nil, errors.New("a category with similar name already exists")
			}
		}

		updates["name"] = name
		updates["slug"] = slug
	}

	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if req.Icon != nil {
		updates["icon"] = strings.TrimSpace(*req.Icon)
	}

	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCache()

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteCategory(id uuid.UUID) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	eventCount, err := s.repo.CountEvents(id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}

	if eventCount > 0 {
		return fmt.Errorf("cannot delete category as it is being used by %d event(s). Consider deactivating it instead", eventCount)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCache()
	return nil
}

func (s *service) GetActiveCategories(ctx context.Context) ([]CategoryResponse, error) {
	var cached []CategoryResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, constants.CACHE_KEY_CATEGORIES_ACTIVE, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get active categories: %w", err)
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = category.ToResponse()
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, constants.CACHE_KEY_CATEGORIES_ACTIVE, responses, constants.TTL_CATEGORIES_ACTIVE)
	}

	return responses, nil
}

func (s *service) GetAllCategories() ([]CategoryResponse, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = category.ToResponse()
	}

	return responses, nil
}

func (s *service) invalidateCache() {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(context.Background(), constants.PATTERN_INVALIDATE_CATEGORIES)
}
