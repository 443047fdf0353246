package service

import (
	"context"

	"plateful/internal/cart"
	"plateful/internal/domain"
)

type CheckoutRepository interface {
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CustomerBalance(ctx context.Context, customerID int) (domain.Money, error)
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	TransitionOrder(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error)
	RejectOrder(ctx context.Context, orderID int) (*domain.Order, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
}

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID int) (*domain.Order, []domain.OrderItem, error)
	ListOrdersByCustomer(ctx context.Context, customerID int) ([]domain.Order, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID int, activeOnly bool) ([]domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	CustomerBalance(ctx context.Context, customerID int) (domain.Money, error)
	RestaurantBalance(ctx context.Context, restaurantID int) (domain.Money, error)
}

type MenuRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, restaurantID, itemID int) (int64, error)
}

type CheckoutCache interface {
	CheckoutMarkerKey(token string) string
	SetIfAbsent(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, evt domain.OrderEvent) error
}

type CheckoutServiceInterface interface {
	PlaceOrder(ctx context.Context, customerID int, c cart.Cart, notes string) (*domain.Order, error)
	Accept(ctx context.Context, orderID int) (*domain.Order, error)
	Reject(ctx context.Context, orderID int) (*domain.Order, error)
	Complete(ctx context.Context, orderID int) (*domain.Order, error)
}

type OrderQueryServiceInterface interface {
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID int) ([]domain.Order, error)
	ListForRestaurant(ctx context.Context, restaurantID int, activeOnly bool) ([]domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
	QRLink(orderID int) string
	CustomerBalance(ctx context.Context, customerID int) (domain.Money, error)
	RestaurantBalance(ctx context.Context, restaurantID int) (domain.Money, error)
}

type MenuServiceInterface interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	Menu(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, restaurantID, itemID int) (int64, error)
}
