package service

import (
	"context"
	"errors"

	"plateful/internal/domain"
)

var (
	ErrInvalidCategory = errors.New("unknown menu category")
	ErrInvalidPrice    = errors.New("price must be positive")
)

type MenuService struct {
	repository MenuRepository
}

func NewMenuService(repository MenuRepository) *MenuService {
	return &MenuService{repository: repository}
}

func (s *MenuService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repository.ListRestaurants(ctx)
}

func (s *MenuService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repository.GetRestaurant(ctx, id)
}

func (s *MenuService) Menu(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error) {
	return s.repository.ListMenuItems(ctx, restaurantID, availableOnly)
}

func (s *MenuService) GetItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error) {
	return s.repository.GetMenuItem(ctx, restaurantID, itemID)
}

func (s *MenuService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.repository.CreateMenuItem(ctx, item)
}

func (s *MenuService) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.repository.UpdateMenuItem(ctx, item)
}

func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, itemID int) (int64, error) {
	return s.repository.DeleteMenuItem(ctx, restaurantID, itemID)
}

// Categories are a closed set checked at write time, not guessed from the
// item name at read time.
func validateItem(item *domain.MenuItem) error {
	if !domain.MenuCategories[item.Category] {
		return ErrInvalidCategory
	}
	if item.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
