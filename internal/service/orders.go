package service

import (
	"context"
	"fmt"

	"plateful/internal/domain"
)

type OrderQueryService struct {
	repository OrderRepository
	qrEncoder  QRGenerator
}

func NewOrderQueryService(repository OrderRepository, qrEncoder QRGenerator) *OrderQueryService {
	return &OrderQueryService{repository: repository, qrEncoder: qrEncoder}
}

func (s *OrderQueryService) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	order, items, err := s.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	order.QRCode = s.QRLink(order.ID)
	return order, nil
}

func (s *OrderQueryService) ListForCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	return s.repository.ListOrdersByCustomer(ctx, customerID)
}

func (s *OrderQueryService) ListForRestaurant(ctx context.Context, restaurantID int, activeOnly bool) ([]domain.Order, error) {
	return s.repository.ListOrdersByRestaurant(ctx, restaurantID, activeOnly)
}

func (s *OrderQueryService) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.repository.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repository.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderQueryService) QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}

func (s *OrderQueryService) CustomerBalance(ctx context.Context, customerID int) (domain.Money, error) {
	return s.repository.CustomerBalance(ctx, customerID)
}

func (s *OrderQueryService) RestaurantBalance(ctx context.Context, restaurantID int) (domain.Money, error) {
	return s.repository.RestaurantBalance(ctx, restaurantID)
}

var _ OrderQueryServiceInterface = (*OrderQueryService)(nil)
