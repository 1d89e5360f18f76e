package services

import (
	"context"
	"errors"
	"testing"

	"github.com/commonmail820/techwizards-backend/internal/apperrors"
	"github.com/commonmail820/techwizards-backend/internal/events"
	"github.com/commonmail820/techwizards-backend/internal/models"
	"github.com/commonmail820/techwizards-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMenuItemRepository is a mock implementation of repository.MenuItemRepository.
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) List(ctx context.Context, filter repository.MenuItemFilter) ([]models.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuItemRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(ctx context.Context, eventType string, order *models.Order) error {
	args := m.Called(ctx, eventType, order)
	return args.Error(0)
}

func customer(id uint) *models.User {
	return &models.User{ID: id, Username: "customer", Role: string(models.RoleCustomer), IsActive: true}
}

func worker() *models.User {
	return &models.User{ID: 50, Username: "worker", Role: string(models.RoleWorker), IsActive: true}
}

func admin() *models.User {
	return &models.User{ID: 99, Username: "admin", Role: string(models.RoleAdmin), IsActive: true}
}

func TestCreateOrder_TotalsAndSnapshot(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuItemRepository)
	publisher := new(MockPublisher)

	taco := &models.MenuItem{ID: 1, Name: "Taco", Price: 3.50, IsAvailable: true}
	menuRepo.On("GetByID", mock.Anything, uint(1)).Return(taco, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Order).ID = 7
	}).Return(nil)
	publisher.On("PublishOrderEvent", mock.Anything, events.OrderCreated, mock.AnythingOfType("*models.Order")).Return(nil)

	svc := NewOrderService(orderRepo, menuRepo, publisher)
	order, err := svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: 1, Quantity: 2}},
	})

	assert.NoError(t, err)
	assert.Equal(t, 7.00, order.TotalAmount)
	assert.Equal(t, uint(10), order.UserID)
	assert.Equal(t, string(models.OrderPending), order.Status)
	assert.Equal(t, string(models.PaymentPending), order.PaymentStatus)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 3.50, order.Items[0].UnitPrice)
	assert.Equal(t, 7.00, order.Items[0].TotalPrice)
	assert.NotEmpty(t, order.OrderNumber)

	// Repricing the menu item afterward must not touch the snapshot.
	taco.Price = 9.99
	assert.Equal(t, 3.50, order.Items[0].UnitPrice)
	assert.Equal(t, 7.00, order.TotalAmount)

	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrder_MultipleLines(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuItemRepository)
	publisher := new(MockPublisher)

	menuRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.MenuItem{ID: 1, Name: "Taco", Price: 3.50, IsAvailable: true}, nil)
	menuRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.MenuItem{ID: 2, Name: "Horchata", Price: 3.00, IsAvailable: true}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	publisher.On("PublishOrderEvent", mock.Anything, events.OrderCreated, mock.Anything).Return(nil)

	svc := NewOrderService(orderRepo, menuRepo, publisher)
	order, err := svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items: []OrderLineInput{
			{MenuItemID: 1, Quantity: 3},
			{MenuItemID: 2, Quantity: 1},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 13.50, order.TotalAmount)
	assert.Len(t, order.Items, 2)
}

func TestCreateOrder_DistinctOrderNumbers(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuItemRepository)
	publisher := new(MockPublisher)

	menuRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.MenuItem{ID: 1, Name: "Taco", Price: 3.50, IsAvailable: true}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	publisher.On("PublishOrderEvent", mock.Anything, events.OrderCreated, mock.Anything).Return(nil)

	svc := NewOrderService(orderRepo, menuRepo, publisher)

	input := CreateOrderInput{Items: []OrderLineInput{{MenuItemID: 1, Quantity: 1}}}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		order, err := svc.CreateOrder(context.Background(), customer(10), input)
		assert.NoError(t, err)
		// ORD- prefix plus a full 36-char UUID.
		assert.Len(t, order.OrderNumber, 40)
		assert.False(t, seen[order.OrderNumber], "order number %s repeated", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestCreateOrder_UnavailableItem(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuItemRepository)
	publisher := new(MockPublisher)

	menuRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.MenuItem{ID: 1, Name: "Taco", Price: 3.50, IsAvailable: false}, nil)

	svc := NewOrderService(orderRepo, menuRepo, publisher)
	order, err := svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: 1, Quantity: 2}},
	})

	assert.ErrorIs(t, err, apperrors.ErrItemUnavailable)
	assert.Nil(t, order)
	orderRepo.AssertNotCalled(t, "Create")
	publisher.AssertNotCalled(t, "PublishOrderEvent")
}

func TestCreateOrder_MissingItem(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuItemRepository)
	publisher := new(MockPublisher)

	menuRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.MenuItem{ID: 1, Name: "Taco", Price: 3.50, IsAvailable: true}, nil)
	menuRepo.On("GetByID", mock.Anything, uint(404)).Return(nil, apperrors.ErrNotFound)

	svc := NewOrderService(orderRepo, menuRepo, publisher)
	_, err := svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items: []OrderLineInput{
			{MenuItemID: 1, Quantity: 1},
			{MenuItemID: 404, Quantity: 1},
		},
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	orderRepo.AssertNotCalled(t, "Create")
}

func TestCreateOrder_Validation(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockMenuItemRepository), new(MockPublisher))

	_, err := svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items:         []OrderLineInput{{MenuItemID: 1, Quantity: 1}},
		PaymentMethod: "barter",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetOrder_Ownership(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10}, nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	// Another customer is rejected.
	_, err := svc.GetOrder(context.Background(), customer(11), 5)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The owner and staff succeed.
	order, err := svc.GetOrder(context.Background(), customer(10), 5)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), order.ID)

	_, err = svc.GetOrder(context.Background(), worker(), 5)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), admin(), 5)
	assert.NoError(t, err)
}

func TestGetOrders_CustomerScopedToOwn(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	caller := customer(10)
	orderRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.OrderFilter) bool {
		return f.UserID != nil && *f.UserID == caller.ID
	})).Return([]models.Order{}, nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))
	_, err := svc.GetOrders(context.Background(), caller, "", "")

	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestGetOrders_StaffSeesAll(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.OrderFilter) bool {
		return f.UserID == nil && f.Status == string(models.OrderPending)
	})).Return([]models.Order{}, nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))
	_, err := svc.GetOrders(context.Background(), worker(), string(models.OrderPending), "")

	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestGetOrders_InvalidStatusFilter(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockMenuItemRepository), new(MockPublisher))
	_, err := svc.GetOrders(context.Background(), worker(), "shipped", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateOrder_StatusRequiresStaff(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10, Status: string(models.OrderPending)}, nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	status := string(models.OrderConfirmed)
	_, err := svc.UpdateOrder(context.Background(), customer(10), 5, OrderPatch{Status: &status})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	orderRepo.AssertNotCalled(t, "Update")
}

func TestUpdateOrder_OwnerPatchesInstructions(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10}, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	note := "no onions"
	order, err := svc.UpdateOrder(context.Background(), customer(10), 5, OrderPatch{SpecialInstructions: &note})

	assert.NoError(t, err)
	assert.Equal(t, "no onions", order.SpecialInstructions)
}

func TestUpdateOrder_OtherCustomerForbidden(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10}, nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	note := "hijack"
	_, err := svc.UpdateOrder(context.Background(), customer(11), 5, OrderPatch{SpecialInstructions: &note})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSetStatus_Permissive(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10, Status: string(models.OrderDelivered)}, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	publisher.On("PublishOrderEvent", mock.Anything, events.OrderStatusChanged, mock.Anything).Return(nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), publisher)

	// No transition graph: delivered back to pending is accepted.
	order, err := svc.SetStatus(context.Background(), worker(), 5, string(models.OrderPending))

	assert.NoError(t, err)
	assert.Equal(t, string(models.OrderPending), order.Status)
	publisher.AssertExpectations(t)
}

func TestSetStatus_CustomerForbidden(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockMenuItemRepository), new(MockPublisher))
	_, err := svc.SetStatus(context.Background(), customer(10), 5, string(models.OrderReady))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSetStatus_InvalidValue(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockMenuItemRepository), new(MockPublisher))
	_, err := svc.SetStatus(context.Background(), worker(), 5, "teleported")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSetPaymentStatus(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10}, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	order, err := svc.SetPaymentStatus(context.Background(), admin(), 5, string(models.PaymentPaid))
	assert.NoError(t, err)
	assert.Equal(t, string(models.PaymentPaid), order.PaymentStatus)

	_, err = svc.SetPaymentStatus(context.Background(), customer(10), 5, string(models.PaymentPaid))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteOrder_AdminOnly(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Order{ID: 5, UserID: 10}, nil)
	orderRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	assert.ErrorIs(t, svc.DeleteOrder(context.Background(), worker(), 5), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteOrder(context.Background(), customer(10), 5), apperrors.ErrForbidden)
	assert.NoError(t, svc.DeleteOrder(context.Background(), admin(), 5))
}

func TestDeleteOrder_MissingOrderIsNotFoundForEveryRole(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", mock.Anything, uint(404)).Return(nil, apperrors.ErrNotFound)

	svc := NewOrderService(orderRepo, new(MockMenuItemRepository), new(MockPublisher))

	// A missing order reads as not found before any role gate applies.
	assert.ErrorIs(t, svc.DeleteOrder(context.Background(), customer(10), 404), apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteOrder(context.Background(), worker(), 404), apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteOrder(context.Background(), admin(), 404), apperrors.ErrNotFound)
	orderRepo.AssertNotCalled(t, "Delete")
}

func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuItemRepository)
	publisher := new(MockPublisher)

	menuRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.MenuItem{ID: 1, Name: "Taco", Price: 3.50, IsAvailable: true}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	publisher.On("PublishOrderEvent", mock.Anything, events.OrderCreated, mock.Anything).Return(errors.New("broker down"))

	svc := NewOrderService(orderRepo, menuRepo, publisher)
	order, err := svc.CreateOrder(context.Background(), customer(10), CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: 1, Quantity: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
}
