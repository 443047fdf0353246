package mocks

import (
	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type AggregateStore struct {
	mock.Mock
}

func NewAggregateStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *AggregateStore {
	m := &AggregateStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AggregateStore) RecordOrder(evt domain.OrderEvent) error {
	ret := m.Called(evt)
	return ret.Error(0)
}

func (m *AggregateStore) RefreshLeaderboard(restaurantID int) error {
	ret := m.Called(restaurantID)
	return ret.Error(0)
}
