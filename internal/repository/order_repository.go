package repository

import (
	"context"

	"github.com/commonmail820/techwizards-backend/internal/models"

	"gorm.io/gorm"
)

// OrderFilter narrows an order listing. A nil UserID means all users
// (staff view); empty status strings are no-ops.
type OrderFilter struct {
	UserID        *uint
	Status        string
	PaymentStatus string
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order together with its items. GORM runs the
// insert and the association inserts inside a single transaction, so a
// failed line leaves no partial order behind. Never retried.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Create(order).Error)
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := readWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	err := readWithRetry(ctx, func(ctx context.Context) error {
		query := r.db.WithContext(ctx).Preload("Items").Order("created_at desc")
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.PaymentStatus != "" {
			query = query.Where("payment_status = ?", filter.PaymentStatus)
		}
		return query.Find(&orders).Error
	})
	return orders, err
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return translateError(r.db.WithContext(wctx).Omit("Items").Save(order).Error)
}

// Delete soft-deletes the order and its items together, so both sides
// share the same lifecycle and a later restore stays consistent.
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	wctx, cancel := writeContext(ctx)
	defer cancel()
	return r.db.WithContext(wctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}
