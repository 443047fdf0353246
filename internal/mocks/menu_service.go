package mocks

import (
	"context"

	"plateful/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuServiceInterface) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	ret := m.Called(ctx)
	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (m *MenuServiceInterface) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	ret := m.Called(ctx, id)
	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (m *MenuServiceInterface) Menu(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error) {
	ret := m.Called(ctx, restaurantID, availableOnly)
	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *MenuServiceInterface) GetItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error) {
	ret := m.Called(ctx, restaurantID, itemID)
	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *MenuServiceInterface) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	ret := m.Called(ctx, item)
	return ret.Error(0)
}

func (m *MenuServiceInterface) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	ret := m.Called(ctx, item)
	return ret.Error(0)
}

func (m *MenuServiceInterface) DeleteItem(ctx context.Context, restaurantID, itemID int) (int64, error) {
	ret := m.Called(ctx, restaurantID, itemID)
	return ret.Get(0).(int64), ret.Error(1)
}
