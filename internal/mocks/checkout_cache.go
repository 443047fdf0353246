package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type CheckoutCache struct {
	mock.Mock
}

func NewCheckoutCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutCache {
	m := &CheckoutCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CheckoutCache) CheckoutMarkerKey(token string) string {
	ret := m.Called(token)
	return ret.String(0)
}

func (m *CheckoutCache) SetIfAbsent(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (m *CheckoutCache) Release(ctx context.Context, key string) error {
	ret := m.Called(ctx, key)
	return ret.Error(0)
}
