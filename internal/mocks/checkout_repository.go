package mocks

import (
	"context"

	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CheckoutRepository struct {
	mock.Mock
}

func NewCheckoutRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutRepository {
	m := &CheckoutRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CheckoutRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	ret := m.Called(ctx, id)
	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutRepository) CustomerBalance(ctx context.Context, customerID int) (domain.Money, error) {
	ret := m.Called(ctx, customerID)
	return ret.Get(0).(domain.Money), ret.Error(1)
}

func (m *CheckoutRepository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	ret := m.Called(ctx, order, items)
	return ret.Error(0)
}

func (m *CheckoutRepository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	ret := m.Called(ctx, key)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutRepository) TransitionOrder(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error) {
	ret := m.Called(ctx, orderID, from, to)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutRepository) RejectOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	ret := m.Called(ctx, orderID, qr)
	return ret.Error(0)
}
