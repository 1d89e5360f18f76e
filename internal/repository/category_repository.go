package repository

import (
	"context"

	"github.com/commonmail820/techwizards-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.MenuCategory) error
	GetByID(ctx context.Context, id uint) (*models.MenuCategory, error)
	List(ctx context.Context) ([]models.MenuCategory, error)
	Update(ctx context.Context, category *models.MenuCategory) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.MenuCategory) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Create(category).Error)
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.MenuCategory, error) {
	var category models.MenuCategory
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&category, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("display_order asc").Find(&categories).Error
	})
	return categories, err
}

func (r *categoryRepository) Update(ctx context.Context, category *models.MenuCategory) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Save(category).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return r.db.WithContext(wctx).Delete(&models.MenuCategory{}, id).Error
}
