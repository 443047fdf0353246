package mocks

import (
	"context"

	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderQueryServiceInterface struct {
	mock.Mock
}

func NewOrderQueryServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderQueryServiceInterface {
	m := &OrderQueryServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderQueryServiceInterface) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderQueryServiceInterface) ListForCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	ret := m.Called(ctx, customerID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderQueryServiceInterface) ListForRestaurant(ctx context.Context, restaurantID int, activeOnly bool) ([]domain.Order, error) {
	ret := m.Called(ctx, restaurantID, activeOnly)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderQueryServiceInterface) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ret := m.Called(ctx, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (m *OrderQueryServiceInterface) QRLink(orderID int) string {
	ret := m.Called(orderID)
	return ret.String(0)
}

func (m *OrderQueryServiceInterface) CustomerBalance(ctx context.Context, customerID int) (domain.Money, error) {
	ret := m.Called(ctx, customerID)
	return ret.Get(0).(domain.Money), ret.Error(1)
}

func (m *OrderQueryServiceInterface) RestaurantBalance(ctx context.Context, restaurantID int) (domain.Money, error) {
	ret := m.Called(ctx, restaurantID)
	return ret.Get(0).(domain.Money), ret.Error(1)
}
