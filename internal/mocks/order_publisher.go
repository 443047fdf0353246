package mocks

import (
	"context"

	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrderEvent(ctx context.Context, evt domain.OrderEvent) error {
	ret := m.Called(ctx, evt)
	return ret.Error(0)
}
