package mocks

import (
	"context"

	"plateful/internal/cart"
	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CheckoutServiceInterface struct {
	mock.Mock
}

func NewCheckoutServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CheckoutServiceInterface) PlaceOrder(ctx context.Context, customerID int, c cart.Cart, notes string) (*domain.Order, error) {
	ret := m.Called(ctx, customerID, c, notes)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutServiceInterface) Accept(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutServiceInterface) Reject(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *CheckoutServiceInterface) Complete(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}
