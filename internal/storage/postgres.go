package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"plateful/internal/domain"

	"github.com/lib/pq"
)

var (
	// ErrInsufficientBalance aborts a checkout whose customer row cannot
	// cover the order total.
	ErrInsufficientBalance = errors.New("customer balance below order total")
	// ErrTransitionConflict means the order exists but its current status
	// does not match the transition's precondition.
	ErrTransitionConflict = errors.New("order status conflict")
	// ErrDuplicateKey is returned when an idempotency key is already bound
	// to an order.
	ErrDuplicateKey = errors.New("idempotency key already used")
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const orderColumns = `id, customer_id, restaurant_id, status, total_amount, platform_fee,
	restaurant_amount, COALESCE(notes, ''), COALESCE(idempotency_key, ''), created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.CustomerID, &order.RestaurantID, &order.Status,
		&order.TotalAmount, &order.PlatformFee, &order.RestaurantAmount,
		&order.Notes, &order.IdempotencyKey, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder is the checkout's atomic unit: the order row, its line items
// and the three ledger movements commit together or not at all. The three
// balance rows are locked in a fixed order (customer, restaurant, platform)
// so concurrent checkouts against the same restaurant serialize instead of
// deadlocking or losing updates.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var customerBalance domain.Money
	if err := tx.QueryRowContext(ctx,
		`SELECT balance FROM customers WHERE id = $1 FOR UPDATE`,
		order.CustomerID,
	).Scan(&customerBalance); err != nil {
		return fmt.Errorf("lock customer: %w", err)
	}

	var restaurantBalance domain.Money
	if err := tx.QueryRowContext(ctx,
		`SELECT balance FROM restaurants WHERE id = $1 FOR UPDATE`,
		order.RestaurantID,
	).Scan(&restaurantBalance); err != nil {
		return fmt.Errorf("lock restaurant: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`SELECT balance FROM platform WHERE id = 1 FOR UPDATE`,
	); err != nil {
		return fmt.Errorf("lock platform: %w", err)
	}

	if customerBalance < order.TotalAmount {
		return ErrInsufficientBalance
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, restaurant_id, status, total_amount, platform_fee,
			restaurant_amount, notes, idempotency_key)
		VALUES ($1, $2, 'processing', $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at, updated_at`,
		order.CustomerID, order.RestaurantID, order.TotalAmount, order.PlatformFee,
		order.RestaurantAmount, order.Notes, order.IdempotencyKey,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert order: %w", err)
	}
	order.Status = domain.StatusProcessing

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price_at_order)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, item.MenuItemID, item.Name, item.Quantity, item.PriceAtOrder,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := debit(ctx, tx, "customers", order.CustomerID, order.TotalAmount); err != nil {
		return err
	}
	if err := credit(ctx, tx, "restaurants", order.RestaurantID, order.RestaurantAmount); err != nil {
		return err
	}
	if err := credit(ctx, tx, "platform", 1, order.PlatformFee); err != nil {
		return err
	}

	return tx.Commit()
}

// debit and credit are only ever called inside an open transaction; the
// ledger is never touched outside an atomic unit.
func debit(ctx context.Context, tx *sql.Tx, table string, id int, amount domain.Money) error {
	if amount < 0 {
		return fmt.Errorf("debit %s %d: negative amount", table, id)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE `+table+` SET balance = balance - $1 WHERE id = $2`,
		amount, id,
	); err != nil {
		return fmt.Errorf("debit %s: %w", table, err)
	}
	return nil
}

func credit(ctx context.Context, tx *sql.Tx, table string, id int, amount domain.Money) error {
	if amount < 0 {
		return fmt.Errorf("credit %s %d: negative amount", table, id)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE `+table+` SET balance = balance + $1 WHERE id = $2`,
		amount, id,
	); err != nil {
		return fmt.Errorf("credit %s: %w", table, err)
	}
	return nil
}

// TransitionOrder flips the status only when the current status matches
// from. The conditional update is the whole concurrency guard: a racing
// transition sees zero rows and reports the conflict instead of
// overwriting.
func (r *PostgresRepository) TransitionOrder(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING `+orderColumns,
		orderID, to, from))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transition order: %w", err)
	}

	var current domain.OrderStatus
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("check order status: %w", err)
	}
	return nil, ErrTransitionConflict
}

// RejectOrder cancels a processing order and reverses its settlement in the
// same transaction: the customer gets the total back, restaurant and
// platform credits are withdrawn.
func (r *PostgresRepository) RejectOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	order, err := scanOrder(tx.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	if order.Status != domain.StatusProcessing {
		return nil, ErrTransitionConflict
	}

	if err := tx.QueryRowContext(ctx, `
		UPDATE orders SET status = 'cancelled', updated_at = now()
		WHERE id = $1
		RETURNING updated_at`, orderID,
	).Scan(&order.UpdatedAt); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	order.Status = domain.StatusCancelled

	if err := credit(ctx, tx, "customers", order.CustomerID, order.TotalAmount); err != nil {
		return nil, err
	}
	if err := debit(ctx, tx, "restaurants", order.RestaurantID, order.RestaurantAmount); err != nil {
		return nil, err
	}
	if err := debit(ctx, tx, "platform", 1, order.PlatformFee); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE idempotency_key = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order by key: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, []domain.OrderItem, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		return nil, nil, err
	}

	r.DB.QueryRowContext(ctx, `SELECT name FROM restaurants WHERE id = $1`, order.RestaurantID).
		Scan(&order.RestaurantName)
	r.DB.QueryRowContext(ctx, `SELECT first_name || ' ' || last_name FROM customers WHERE id = $1`,
		order.CustomerID).Scan(&order.CustomerName)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, quantity, price_at_order
		FROM order_items
		WHERE order_id = $1
		ORDER BY menu_item_id`, orderID)
	if err != nil {
		return order, nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.PriceAtOrder); err != nil {
			continue
		}
		items = append(items, item)
	}
	return order, items, nil
}

func (r *PostgresRepository) ListOrdersByCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
}

func (r *PostgresRepository) ListOrdersByRestaurant(ctx context.Context, restaurantID int, activeOnly bool) ([]domain.Order, error) {
	if activeOnly {
		return r.listOrders(ctx, `
			SELECT `+orderColumns+` FROM orders
			WHERE restaurant_id = $1 AND status IN ('processing', 'preparing')
			ORDER BY created_at DESC`, restaurantID)
	}
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(street, ''), COALESCE(postal_code, ''), COALESCE(description, ''),
			COALESCE(image_url, ''), is_open, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Street, &rest.PostalCode, &rest.Description,
			&rest.ImageURL, &rest.IsOpen, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(street, ''), COALESCE(postal_code, ''), COALESCE(description, ''),
			COALESCE(image_url, ''), is_open, created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Street, &rest.PostalCode, &rest.Description,
			&rest.ImageURL, &rest.IsOpen, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresRepository) CustomerBalance(ctx context.Context, customerID int) (domain.Money, error) {
	var balance domain.Money
	err := r.DB.QueryRowContext(ctx, `SELECT balance FROM customers WHERE id = $1`, customerID).Scan(&balance)
	return balance, err
}

func (r *PostgresRepository) RestaurantBalance(ctx context.Context, restaurantID int) (domain.Money, error) {
	var balance domain.Money
	err := r.DB.QueryRowContext(ctx, `SELECT balance FROM restaurants WHERE id = $1`, restaurantID).Scan(&balance)
	return balance, err
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, name, description, price, category, image_url, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		item.RestaurantID, item.Name, item.Description, item.Price, item.Category,
		item.ImageURL, item.IsAvailable,
	).Scan(&item.ID)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, category,
			COALESCE(image_url, ''), is_available
		FROM menu_items
		WHERE restaurant_id = $1`
	if availableOnly {
		query += ` AND is_available`
	}
	query += ` ORDER BY category, name`

	rows, err := r.DB.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Category, &item.ImageURL, &item.IsAvailable); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, category,
			COALESCE(image_url, ''), is_available
		FROM menu_items
		WHERE id = $1 AND restaurant_id = $2`, itemID, restaurantID).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Category, &item.ImageURL, &item.IsAvailable)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, is_available = $5
		WHERE id = $6 AND restaurant_id = $7`,
		item.Name, item.Description, item.Price, item.Category, item.IsAvailable,
		item.ID, item.RestaurantID)
	return err
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`, itemID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			street TEXT,
			postal_code TEXT,
			description TEXT,
			image_url TEXT,
			is_open BOOLEAN NOT NULL DEFAULT TRUE,
			balance BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			street TEXT,
			postal_code TEXT,
			balance BIGINT NOT NULL DEFAULT 10000,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS platform (
			id INT PRIMARY KEY,
			balance BIGINT NOT NULL DEFAULT 0
		)`,
		`INSERT INTO platform (id, balance) VALUES (1, 0) ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			description TEXT,
			price BIGINT NOT NULL,
			category TEXT NOT NULL,
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_id INT NOT NULL REFERENCES customers(id),
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			status TEXT NOT NULL CHECK (status IN ('processing', 'preparing', 'completed', 'cancelled')),
			total_amount BIGINT NOT NULL,
			platform_fee BIGINT NOT NULL,
			restaurant_amount BIGINT NOT NULL,
			notes TEXT,
			idempotency_key TEXT UNIQUE,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id),
			menu_item_id INT NOT NULL,
			name TEXT NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			price_at_order BIGINT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
