package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/commonmail820/techwizards-backend/internal/apperrors"
	"github.com/commonmail820/techwizards-backend/internal/events"
	"github.com/commonmail820/techwizards-backend/internal/models"
	"github.com/commonmail820/techwizards-backend/internal/repository"

	"github.com/google/uuid"
)

type OrderLineInput struct {
	MenuItemID          uint
	Quantity            int
	SpecialInstructions string
}

type CreateOrderInput struct {
	Items               []OrderLineInput
	IsTakeout           bool
	TableNumber         *int
	PaymentMethod       string
	SpecialInstructions string
}

// OrderPatch carries the fields a PUT /orders/:id may change. Nil
// fields are left untouched.
type OrderPatch struct {
	Status              *string
	PaymentStatus       *string
	SpecialInstructions *string
}

type OrderService interface {
	CreateOrder(ctx context.Context, caller *models.User, input CreateOrderInput) (*models.Order, error)
	GetOrders(ctx context.Context, caller *models.User, status, paymentStatus string) ([]models.Order, error)
	GetOrder(ctx context.Context, caller *models.User, id uint) (*models.Order, error)
	UpdateOrder(ctx context.Context, caller *models.User, id uint, patch OrderPatch) (*models.Order, error)
	DeleteOrder(ctx context.Context, caller *models.User, id uint) error
	SetStatus(ctx context.Context, caller *models.User, id uint, status string) (*models.Order, error)
	SetPaymentStatus(ctx context.Context, caller *models.User, id uint, paymentStatus string) (*models.Order, error)
}

type orderService struct {
	orders    repository.OrderRepository
	menuItems repository.MenuItemRepository
	publisher events.Publisher
}

func NewOrderService(orders repository.OrderRepository, menuItems repository.MenuItemRepository, publisher events.Publisher) OrderService {
	return &orderService{orders: orders, menuItems: menuItems, publisher: publisher}
}

// CreateOrder validates every cart line against the menu, snapshots
// current prices into the order items, and persists the order with its
// items as one unit.
func (s *orderService) CreateOrder(ctx context.Context, caller *models.User, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", apperrors.ErrValidation)
	}
	if input.PaymentMethod != "" && !models.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, input.PaymentMethod)
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
		}

		menuItem, err := s.menuItems.GetByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", apperrors.ErrNotFound, line.MenuItemID)
			}
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrItemUnavailable, menuItem.Name)
		}

		lineTotal := menuItem.Price * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:          menuItem.ID,
			Quantity:            line.Quantity,
			UnitPrice:           menuItem.Price,
			TotalPrice:          lineTotal,
			SpecialInstructions: line.SpecialInstructions,
		})
		totalAmount += lineTotal
	}

	order := &models.Order{
		OrderNumber:         newOrderNumber(),
		UserID:              caller.ID,
		TotalAmount:         totalAmount,
		Status:              string(models.OrderPending),
		PaymentStatus:       string(models.PaymentPending),
		PaymentMethod:       input.PaymentMethod,
		IsTakeout:           input.IsTakeout,
		TableNumber:         input.TableNumber,
		SpecialInstructions: input.SpecialInstructions,
		Items:               orderItems,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, caller *models.User, status, paymentStatus string) ([]models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}
	if paymentStatus != "" && !models.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, paymentStatus)
	}

	filter := repository.OrderFilter{Status: status, PaymentStatus: paymentStatus}
	if !caller.IsStaff() {
		filter.UserID = &caller.ID
	}
	return s.orders.List(ctx, filter)
}

func (s *orderService) GetOrder(ctx context.Context, caller *models.User, id uint) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaff() && order.UserID != caller.ID {
		return nil, fmt.Errorf("%w: not your order", apperrors.ErrForbidden)
	}
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, caller *models.User, id uint, patch OrderPatch) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if (patch.Status != nil || patch.PaymentStatus != nil) && !caller.IsStaff() {
		return nil, fmt.Errorf("%w: only staff can update order status", apperrors.ErrForbidden)
	}
	if !caller.IsStaff() && order.UserID != caller.ID {
		return nil, fmt.Errorf("%w: not your order", apperrors.ErrForbidden)
	}

	statusChanged := false
	if patch.Status != nil {
		if !models.ValidOrderStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, *patch.Status)
		}
		statusChanged = order.Status != *patch.Status
		order.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		if !models.ValidPaymentStatus(*patch.PaymentStatus) {
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, *patch.PaymentStatus)
		}
		order.PaymentStatus = *patch.PaymentStatus
	}
	if patch.SpecialInstructions != nil {
		order.SpecialInstructions = *patch.SpecialInstructions
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	if statusChanged {
		s.publish(ctx, events.OrderStatusChanged, order)
	}
	return order, nil
}

// DeleteOrder resolves the order first so a missing id reads as not
// found for every caller, then gates the removal on the admin role.
func (s *orderService) DeleteOrder(ctx context.Context, caller *models.User, id uint) error {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: only admin can delete orders", apperrors.ErrForbidden)
	}
	return s.orders.Delete(ctx, id)
}

// SetStatus is the staff shortcut for PUT /orders/:id/status. Any
// valid status value is accepted in any order; no transition graph is
// enforced.
func (s *orderService) SetStatus(ctx context.Context, caller *models.User, id uint, status string) (*models.Order, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: only staff can update order status", apperrors.ErrForbidden)
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := order.Status != status
	order.Status = status
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	if changed {
		s.publish(ctx, events.OrderStatusChanged, order)
	}
	return order, nil
}

func (s *orderService) SetPaymentStatus(ctx context.Context, caller *models.User, id uint, paymentStatus string) (*models.Order, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: only staff can update payment status", apperrors.ErrForbidden)
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, paymentStatus)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = paymentStatus
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// publish is best-effort. The order is already committed; a broker
// failure must not fail the request.
func (s *orderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if err := s.publisher.PublishOrderEvent(ctx, eventType, order); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", eventType, order.OrderNumber, err)
	}
}

// newOrderNumber keeps the full UUID so numbers never collide within
// the lifetime of the system.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString())
}
