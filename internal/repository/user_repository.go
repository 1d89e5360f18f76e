package repository

import (
	"context"
	"errors"

	"github.com/commonmail820/techwizards-backend/internal/apperrors"
	"github.com/commonmail820/techwizards-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Find(&users).Error
	})
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Save(user).Error)
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return r.db.WithContext(wctx).Delete(&models.User{}, id).Error
}

// translateError maps GORM errors to the service-layer taxonomy so
// callers never depend on gorm directly.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict
	default:
		return err
	}
}
