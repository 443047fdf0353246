package mocks

import (
	"context"

	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, []domain.OrderItem, error) {
	ret := m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	var r1 []domain.OrderItem
	if ret.Get(1) != nil {
		r1 = ret.Get(1).([]domain.OrderItem)
	}
	return r0, r1, ret.Error(2)
}

func (m *OrderRepository) ListOrdersByCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	ret := m.Called(ctx, customerID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderRepository) ListOrdersByRestaurant(ctx context.Context, restaurantID int, activeOnly bool) ([]domain.Order, error) {
	ret := m.Called(ctx, restaurantID, activeOnly)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ret := m.Called(ctx, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (m *OrderRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	ret := m.Called(ctx, orderID, qr)
	return ret.Error(0)
}

func (m *OrderRepository) CustomerBalance(ctx context.Context, customerID int) (domain.Money, error) {
	ret := m.Called(ctx, customerID)
	return ret.Get(0).(domain.Money), ret.Error(1)
}

func (m *OrderRepository) RestaurantBalance(ctx context.Context, restaurantID int) (domain.Money, error) {
	ret := m.Called(ctx, restaurantID)
	return ret.Get(0).(domain.Money), ret.Error(1)
}
