package repository

import (
	"context"

	"github.com/commonmail820/techwizards-backend/internal/models"

	"gorm.io/gorm"
)

// MenuItemFilter narrows a menu listing. Nil fields are no-ops; set
// fields combine conjunctively.
type MenuItemFilter struct {
	Category     *string
	IsVegetarian *bool
	IsAvailable  *bool
}

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	List(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context, category string) (int64, error)
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Create(item).Error)
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&item, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *menuItemRepository) List(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := readWithRetry(ctx, func(ctx context.Context) error {
		query := r.db.WithContext(ctx).Model(&models.MenuItem{})
		if filter.Category != nil {
			query = query.Where("category = ?", *filter.Category)
		}
		if filter.IsVegetarian != nil {
			query = query.Where("is_vegetarian = ?", *filter.IsVegetarian)
		}
		if filter.IsAvailable != nil {
			query = query.Where("is_available = ?", *filter.IsAvailable)
		}
		return query.Find(&items).Error
	})
	return items, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Save(item).Error)
}

func (r *menuItemRepository) Delete(ctx context.Context, id uint) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return r.db.WithContext(wctx).Delete(&models.MenuItem{}, id).Error
}

func (r *menuItemRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("category = ?", category).Count(&count).Error
	})
	return count, err
}
