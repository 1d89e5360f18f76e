package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/commonmail820/techwizards-backend/internal/apperrors"
	"github.com/commonmail820/techwizards-backend/internal/models"
	"github.com/commonmail820/techwizards-backend/internal/repository"
)

const (
	categoriesCacheKey = "menu:categories"
	menuItemCacheTTL   = 10 * time.Minute
)

// Cache is the read-through cache used for menu lookups. Implemented
// by the Redis client; a nil Cache disables caching.
type Cache interface {
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	DeleteCached(ctx context.Context, keys ...string) error
}

type MenuItemInput struct {
	Name         string
	Description  string
	Price        float64
	Category     string
	ImageURL     string
	SpiceLevel   int
	IsVegetarian bool
	IsAvailable  bool
}

type CategoryInput struct {
	Name         string
	Description  string
	ImageURL     string
	DisplayOrder int
}

type MenuService interface {
	ListItems(ctx context.Context, filter repository.MenuItemFilter) ([]models.MenuItem, error)
	GetItem(ctx context.Context, id uint) (*models.MenuItem, error)
	CreateItem(ctx context.Context, caller *models.User, input MenuItemInput) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, caller *models.User, id uint, input MenuItemInput) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, caller *models.User, id uint) error

	ListCategories(ctx context.Context) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, caller *models.User, input CategoryInput) (*models.MenuCategory, error)
	UpdateCategory(ctx context.Context, caller *models.User, id uint, input CategoryInput) (*models.MenuCategory, error)
	DeleteCategory(ctx context.Context, caller *models.User, id uint) error
}

type menuService struct {
	items      repository.MenuItemRepository
	categories repository.CategoryRepository
	cache      Cache
}

func NewMenuService(items repository.MenuItemRepository, categories repository.CategoryRepository, cache Cache) MenuService {
	return &menuService{items: items, categories: categories, cache: cache}
}

func (s *menuService) ListItems(ctx context.Context, filter repository.MenuItemFilter) ([]models.MenuItem, error) {
	if filter.Category != nil && !models.ValidItemCategory(*filter.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *filter.Category)
	}
	return s.items.List(ctx, filter)
}

func (s *menuService) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	key := itemCacheKey(id)
	if s.cache != nil {
		var cached models.MenuItem
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("Warning: menu cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, item, menuItemCacheTTL); err != nil {
			log.Printf("Warning: menu cache write failed: %v", err)
		}
	}
	return item, nil
}

func (s *menuService) CreateItem(ctx context.Context, caller *models.User, input MenuItemInput) (*models.MenuItem, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admin users can manage the menu", apperrors.ErrForbidden)
	}
	if err := validateMenuItemInput(input); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		SpiceLevel:   input.SpiceLevel,
		IsVegetarian: input.IsVegetarian,
		IsAvailable:  input.IsAvailable,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, caller *models.User, id uint, input MenuItemInput) (*models.MenuItem, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admin users can manage the menu", apperrors.ErrForbidden)
	}
	if err := validateMenuItemInput(input); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.Category = input.Category
	item.ImageURL = input.ImageURL
	item.SpiceLevel = input.SpiceLevel
	item.IsVegetarian = input.IsVegetarian
	item.IsAvailable = input.IsAvailable

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, itemCacheKey(id))
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, caller *models.User, id uint) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: only admin users can manage the menu", apperrors.ErrForbidden)
	}
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, itemCacheKey(id))
	return nil
}

func (s *menuService) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	if s.cache != nil {
		var cached []models.MenuCategory
		hit, err := s.cache.GetJSON(ctx, categoriesCacheKey, &cached)
		if err != nil {
			log.Printf("Warning: category cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, categoriesCacheKey, categories, menuItemCacheTTL); err != nil {
			log.Printf("Warning: category cache write failed: %v", err)
		}
	}
	return categories, nil
}

func (s *menuService) CreateCategory(ctx context.Context, caller *models.User, input CategoryInput) (*models.MenuCategory, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admin users can manage the menu", apperrors.ErrForbidden)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	category := &models.MenuCategory{
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx, categoriesCacheKey)
	return category, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, caller *models.User, id uint, input CategoryInput) (*models.MenuCategory, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admin users can manage the menu", apperrors.ErrForbidden)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.DisplayOrder = input.DisplayOrder

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx, categoriesCacheKey)
	return category, nil
}

// DeleteCategory refuses to remove a category while menu items still
// reference it.
func (s *menuService) DeleteCategory(ctx context.Context, caller *models.User, id uint) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: only admin users can manage the menu", apperrors.ErrForbidden)
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.items.CountByCategory(ctx, category.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category %q still has %d menu items", apperrors.ErrConflict, category.Name, count)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, categoriesCacheKey)
	return nil
}

func (s *menuService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCached(ctx, keys...); err != nil {
		log.Printf("Warning: cache invalidation failed: %v", err)
	}
}

func itemCacheKey(id uint) string {
	return fmt.Sprintf("menu:item:%d", id)
}

func validateMenuItemInput(input MenuItemInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: item name is required", apperrors.ErrValidation)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}
	if !models.ValidItemCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, input.Category)
	}
	if input.SpiceLevel < int(models.SpiceNone) || input.SpiceLevel > int(models.SpiceExtraHot) {
		return fmt.Errorf("%w: spice level must be between 0 and 4", apperrors.ErrValidation)
	}
	return nil
}
