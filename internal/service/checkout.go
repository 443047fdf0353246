package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"plateful/internal/cart"
	"plateful/internal/domain"
	"plateful/internal/pricing"
	"plateful/internal/storage"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidRestaurant = errors.New("restaurant does not exist or is not taking orders")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidTransition = errors.New("order status does not allow this transition")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPersistence       = errors.New("failed to persist order")
)

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// CheckoutService is the order transaction coordinator: it validates the
// cart snapshot, prices it, and hands the storage layer one atomic unit
// covering the order, its items and the three ledger movements. It never
// mutates the cart; clearing it after success is the caller's job.
type CheckoutService struct {
	repository CheckoutRepository
	pricer     *pricing.Engine
	cache      CheckoutCache
	publisher  OrderPublisher
	qrEncoder  QRGenerator
}

func NewCheckoutService(repository CheckoutRepository, pricer *pricing.Engine, cache CheckoutCache, publisher OrderPublisher, qrEncoder QRGenerator) *CheckoutService {
	return &CheckoutService{
		repository: repository,
		pricer:     pricer,
		cache:      cache,
		publisher:  publisher,
		qrEncoder:  qrEncoder,
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID int, c cart.Cart, notes string) (*domain.Order, error) {
	if c.IsEmpty() {
		// A retry after the server already committed and cleared the cart
		// arrives empty but still carries the token. Resolve it to the
		// original order before rejecting.
		if c.Token != "" {
			if existing, err := s.repository.GetOrderByIdempotencyKey(ctx, c.Token); err == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, ErrEmptyCart
	}

	restaurant, err := s.repository.GetRestaurant(ctx, c.RestaurantID)
	if err != nil {
		return nil, persistence(err)
	}
	if restaurant == nil || !restaurant.IsOpen {
		return nil, ErrInvalidRestaurant
	}

	// Price from the cart snapshot, not from a re-read of the menu: the
	// price the customer saw is the price charged.
	quote := s.pricer.Quote(c)

	balance, err := s.repository.CustomerBalance(ctx, customerID)
	if err != nil {
		return nil, persistence(err)
	}
	if balance < quote.Subtotal {
		return nil, ErrInsufficientFunds
	}

	if c.Token != "" && s.cache != nil {
		key := s.cache.CheckoutMarkerKey(c.Token)
		claimed, err := s.cache.SetIfAbsent(ctx, key)
		if err == nil && !claimed {
			// Another attempt with the same cart token got here first.
			// If it committed, hand back its order instead of a duplicate.
			if existing, err := s.repository.GetOrderByIdempotencyKey(ctx, c.Token); err == nil && existing != nil {
				return existing, nil
			}
		}
	}

	order := &domain.Order{
		CustomerID:       customerID,
		RestaurantID:     c.RestaurantID,
		Status:           domain.StatusProcessing,
		TotalAmount:      quote.Subtotal,
		PlatformFee:      quote.PlatformFee,
		RestaurantAmount: quote.RestaurantAmount,
		Notes:            notes,
		IdempotencyKey:   c.Token,
	}
	items := make([]domain.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, domain.OrderItem{
			MenuItemID:   item.MenuItemID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			PriceAtOrder: item.UnitPrice,
		})
	}

	if err := s.repository.CreateOrder(ctx, order, items); err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientBalance):
			return nil, ErrInsufficientFunds
		case errors.Is(err, storage.ErrDuplicateKey):
			if existing, lookupErr := s.repository.GetOrderByIdempotencyKey(ctx, c.Token); lookupErr == nil && existing != nil {
				return existing, nil
			}
			return nil, persistence(err)
		default:
			if c.Token != "" && s.cache != nil {
				_ = s.cache.Release(ctx, s.cache.CheckoutMarkerKey(c.Token))
			}
			return nil, persistence(err)
		}
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.repository.SaveQRCode(ctx, order.ID, qr)
		}
	}

	s.publish(ctx, domain.EventOrderCreated, order)
	return order, nil
}

// Accept moves a processing order to preparing.
func (s *CheckoutService) Accept(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusProcessing, domain.StatusPreparing)
}

// Complete moves a preparing order to completed. Settlement already
// happened at placement, so no balances move.
func (s *CheckoutService) Complete(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.StatusPreparing, domain.StatusCompleted)
}

// Reject cancels a processing order and refunds all three parties.
func (s *CheckoutService) Reject(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repository.RejectOrder(ctx, orderID)
	if err != nil {
		return nil, mapTransitionError(err)
	}
	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

func (s *CheckoutService) transition(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repository.TransitionOrder(ctx, orderID, from, to)
	if err != nil {
		return nil, mapTransitionError(err)
	}
	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrOrderNotFound
	case errors.Is(err, storage.ErrTransitionConflict):
		return ErrInvalidTransition
	default:
		return persistence(err)
	}
}

func (s *CheckoutService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:             eventType,
		OrderID:          order.ID,
		CustomerID:       order.CustomerID,
		RestaurantID:     order.RestaurantID,
		Status:           order.Status,
		TotalAmount:      order.TotalAmount,
		PlatformFee:      order.PlatformFee,
		RestaurantAmount: order.RestaurantAmount,
		Timestamp:        time.Now(),
	})
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
