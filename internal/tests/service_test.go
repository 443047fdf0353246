package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"plateful/internal/cart"
	"plateful/internal/domain"
	"plateful/internal/mocks"
	"plateful/internal/pricing"
	"plateful/internal/service"
	"plateful/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCart(token string) cart.Cart {
	return cart.Cart{
		RestaurantID: 10,
		Token:        token,
		Items: []cart.Item{
			{MenuItemID: 1, Name: "Burger", UnitPrice: 1275, Quantity: 2, RestaurantID: 10},
		},
	}
}

func openRestaurant() *domain.Restaurant {
	return &domain.Restaurant{ID: 10, Name: "Grill House", IsOpen: true}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	repository := mocks.NewCheckoutRepository(t)
	cache := mocks.NewCheckoutCache(t)
	publisher := mocks.NewOrderPublisher(t)
	qrEncoder := mocks.NewQRGenerator(t)

	svc := service.NewCheckoutService(repository, pricing.NewEngine(0), cache, publisher, qrEncoder)

	ctx := context.Background()

	tests := []struct {
		name          string
		cart          cart.Cart
		prepareMocks  func()
		expectedError error
		check         func(t *testing.T, order *domain.Order)
	}{
		{
			name: "error_empty_cart",
			cart: cart.Cart{Token: "tok-empty"},
			prepareMocks: func() {
				repository.On("GetOrderByIdempotencyKey", ctx, "tok-empty").Return(nil, nil).Once()
			},
			expectedError: service.ErrEmptyCart,
		},
		{
			name: "retry_after_cart_cleared_returns_original",
			cart: cart.Cart{Token: "tok-retry"},
			prepareMocks: func() {
				repository.On("GetOrderByIdempotencyKey", ctx, "tok-retry").
					Return(&domain.Order{ID: 9, Status: domain.StatusProcessing}, nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, 9, order.ID)
			},
		},
		{
			name: "error_unknown_restaurant",
			cart: testCart("tok-unknown"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(nil, nil).Once()
			},
			expectedError: service.ErrInvalidRestaurant,
		},
		{
			name: "error_restaurant_closed",
			cart: testCart("tok-closed"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).
					Return(&domain.Restaurant{ID: 10, IsOpen: false}, nil).Once()
			},
			expectedError: service.ErrInvalidRestaurant,
		},
		{
			name: "error_insufficient_funds",
			cart: testCart("tok-poor"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(openRestaurant(), nil).Once()
				repository.On("CustomerBalance", ctx, 42).Return(domain.Money(100), nil).Once()
			},
			expectedError: service.ErrInsufficientFunds,
		},
		{
			name: "success",
			cart: testCart("tok-ok"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(openRestaurant(), nil).Once()
				repository.On("CustomerBalance", ctx, 42).Return(domain.Money(10000), nil).Once()
				cache.On("CheckoutMarkerKey", "tok-ok").Return("checkout:tok-ok").Once()
				cache.On("SetIfAbsent", ctx, "checkout:tok-ok").Return(true, nil).Once()
				repository.On("CreateOrder", ctx, mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Order).ID = 7
					}).Return(nil).Once()
				qrEncoder.On("Generate", 7).Return([]byte("png"), nil).Once()
				repository.On("SaveQRCode", ctx, 7, []byte("png")).Return(nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, 7, order.ID)
				assert.Equal(t, domain.StatusProcessing, order.Status)
				assert.Equal(t, domain.Money(2550), order.TotalAmount)
				assert.Equal(t, domain.Money(383), order.PlatformFee)
				assert.Equal(t, domain.Money(2167), order.RestaurantAmount)
				assert.Equal(t, "tok-ok", order.IdempotencyKey)
			},
		},
		{
			name: "duplicate_token_returns_original_order",
			cart: testCart("tok-dup"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(openRestaurant(), nil).Once()
				repository.On("CustomerBalance", ctx, 42).Return(domain.Money(10000), nil).Once()
				cache.On("CheckoutMarkerKey", "tok-dup").Return("checkout:tok-dup").Once()
				cache.On("SetIfAbsent", ctx, "checkout:tok-dup").Return(false, nil).Once()
				repository.On("GetOrderByIdempotencyKey", ctx, "tok-dup").
					Return(&domain.Order{ID: 3, Status: domain.StatusProcessing}, nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, 3, order.ID)
			},
		},
		{
			name: "duplicate_key_from_storage_returns_original_order",
			cart: testCart("tok-race"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(openRestaurant(), nil).Once()
				repository.On("CustomerBalance", ctx, 42).Return(domain.Money(10000), nil).Once()
				cache.On("CheckoutMarkerKey", "tok-race").Return("checkout:tok-race").Once()
				cache.On("SetIfAbsent", ctx, "checkout:tok-race").Return(true, nil).Once()
				repository.On("CreateOrder", ctx, mock.Anything, mock.Anything).
					Return(storage.ErrDuplicateKey).Once()
				repository.On("GetOrderByIdempotencyKey", ctx, "tok-race").
					Return(&domain.Order{ID: 5}, nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, 5, order.ID)
			},
		},
		{
			name: "balance_check_raced_inside_tx",
			cart: testCart("tok-spent"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(openRestaurant(), nil).Once()
				repository.On("CustomerBalance", ctx, 42).Return(domain.Money(10000), nil).Once()
				cache.On("CheckoutMarkerKey", "tok-spent").Return("checkout:tok-spent").Once()
				cache.On("SetIfAbsent", ctx, "checkout:tok-spent").Return(true, nil).Once()
				repository.On("CreateOrder", ctx, mock.Anything, mock.Anything).
					Return(storage.ErrInsufficientBalance).Once()
			},
			expectedError: service.ErrInsufficientFunds,
		},
		{
			name: "storage_failure_releases_marker",
			cart: testCart("tok-down"),
			prepareMocks: func() {
				repository.On("GetRestaurant", ctx, 10).Return(openRestaurant(), nil).Once()
				repository.On("CustomerBalance", ctx, 42).Return(domain.Money(10000), nil).Once()
				cache.On("CheckoutMarkerKey", "tok-down").Return("checkout:tok-down").Twice()
				cache.On("SetIfAbsent", ctx, "checkout:tok-down").Return(true, nil).Once()
				repository.On("CreateOrder", ctx, mock.Anything, mock.Anything).
					Return(errors.New("connection refused")).Once()
				cache.On("Release", ctx, "checkout:tok-down").Return(nil).Once()
			},
			expectedError: service.ErrPersistence,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			order, err := svc.PlaceOrder(ctx, 42, testCase.cart, "")
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, order)
			testCase.check(t, order)
		})
	}
}

func TestCheckoutService_Transitions(t *testing.T) {
	repository := mocks.NewCheckoutRepository(t)
	publisher := mocks.NewOrderPublisher(t)

	svc := service.NewCheckoutService(repository, pricing.NewEngine(0), nil, publisher, nil)

	ctx := context.Background()

	tests := []struct {
		name          string
		call          func() (*domain.Order, error)
		prepareMocks  func()
		expectedError error
	}{
		{
			name: "accept_success",
			call: func() (*domain.Order, error) { return svc.Accept(ctx, 7) },
			prepareMocks: func() {
				repository.On("TransitionOrder", ctx, 7, domain.StatusProcessing, domain.StatusPreparing).
					Return(&domain.Order{ID: 7, Status: domain.StatusPreparing}, nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "complete_success",
			call: func() (*domain.Order, error) { return svc.Complete(ctx, 7) },
			prepareMocks: func() {
				repository.On("TransitionOrder", ctx, 7, domain.StatusPreparing, domain.StatusCompleted).
					Return(&domain.Order{ID: 7, Status: domain.StatusCompleted}, nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "accept_wrong_status",
			call: func() (*domain.Order, error) { return svc.Accept(ctx, 7) },
			prepareMocks: func() {
				repository.On("TransitionOrder", ctx, 7, domain.StatusProcessing, domain.StatusPreparing).
					Return(nil, storage.ErrTransitionConflict).Once()
			},
			expectedError: service.ErrInvalidTransition,
		},
		{
			name: "accept_order_missing",
			call: func() (*domain.Order, error) { return svc.Accept(ctx, 99) },
			prepareMocks: func() {
				repository.On("TransitionOrder", ctx, 99, domain.StatusProcessing, domain.StatusPreparing).
					Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: service.ErrOrderNotFound,
		},
		{
			name: "reject_success",
			call: func() (*domain.Order, error) { return svc.Reject(ctx, 7) },
			prepareMocks: func() {
				repository.On("RejectOrder", ctx, 7).
					Return(&domain.Order{ID: 7, Status: domain.StatusCancelled}, nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "reject_after_accept",
			call: func() (*domain.Order, error) { return svc.Reject(ctx, 7) },
			prepareMocks: func() {
				repository.On("RejectOrder", ctx, 7).
					Return(nil, storage.ErrTransitionConflict).Once()
			},
			expectedError: service.ErrInvalidTransition,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			order, err := testCase.call()
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, order.ID)
		})
	}
}

func TestOrderQueryService_Get(t *testing.T) {
	repository := mocks.NewOrderRepository(t)
	svc := service.NewOrderQueryService(repository, nil)

	ctx := context.Background()

	items := []domain.OrderItem{{MenuItemID: 1, Name: "Burger", Quantity: 2, PriceAtOrder: 1275}}
	repository.On("GetOrder", ctx, 7).
		Return(&domain.Order{ID: 7, Status: domain.StatusProcessing}, items, nil).Once()

	order, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, items, order.Items)
	assert.Equal(t, "/api/orders/7/qrcode", order.QRCode)
}

func TestOrderQueryService_GetQRCode_RegeneratesWhenMissing(t *testing.T) {
	repository := mocks.NewOrderRepository(t)
	qrEncoder := mocks.NewQRGenerator(t)
	svc := service.NewOrderQueryService(repository, qrEncoder)

	ctx := context.Background()

	repository.On("GetQRCode", ctx, 7).Return([]byte(nil), nil).Once()
	qrEncoder.On("Generate", 7).Return([]byte("png"), nil).Once()
	repository.On("SaveQRCode", ctx, 7, []byte("png")).Return(nil).Once()

	qr, err := svc.GetQRCode(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), qr)
}

func TestMenuService_CreateItem(t *testing.T) {
	repository := mocks.NewMenuRepository(t)
	svc := service.NewMenuService(repository)

	ctx := context.Background()

	tests := []struct {
		name          string
		item          *domain.MenuItem
		prepareMocks  func()
		expectedError error
	}{
		{
			name: "success",
			item: &domain.MenuItem{RestaurantID: 10, Name: "Burger", Price: 899, Category: "mains"},
			prepareMocks: func() {
				repository.On("CreateMenuItem", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:          "error_unknown_category",
			item:          &domain.MenuItem{RestaurantID: 10, Name: "Burger", Price: 899, Category: "specials"},
			prepareMocks:  func() {},
			expectedError: service.ErrInvalidCategory,
		},
		{
			name:          "error_zero_price",
			item:          &domain.MenuItem{RestaurantID: 10, Name: "Burger", Price: 0, Category: "mains"},
			prepareMocks:  func() {},
			expectedError: service.ErrInvalidPrice,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			err := svc.CreateItem(ctx, testCase.item)
			assert.ErrorIs(t, err, testCase.expectedError)
		})
	}
}
