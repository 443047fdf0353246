package mocks

import (
	"context"

	"plateful/internal/cart"

	"github.com/stretchr/testify/mock"
)

type CartStore struct {
	mock.Mock
}

func NewCartStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartStore {
	m := &CartStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartStore) Load(ctx context.Context, customerID int) (cart.Cart, error) {
	ret := m.Called(ctx, customerID)
	return ret.Get(0).(cart.Cart), ret.Error(1)
}

func (m *CartStore) Save(ctx context.Context, customerID int, c cart.Cart) error {
	ret := m.Called(ctx, customerID, c)
	return ret.Error(0)
}

func (m *CartStore) Clear(ctx context.Context, customerID int) error {
	ret := m.Called(ctx, customerID)
	return ret.Error(0)
}
