package domain

import "time"

type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusPreparing  OrderStatus = "preparing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// MenuCategories is the closed set of categories a menu item may carry.
var MenuCategories = map[string]bool{
	"starters": true,
	"mains":    true,
	"desserts": true,
	"drinks":   true,
	"sides":    true,
}

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Street      string    `json:"street"`
	PostalCode  string    `json:"postal_code"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsOpen      bool      `json:"is_open"`
	CreatedAt   time.Time `json:"created_at"`
}

type Customer struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        Money  `json:"price"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url"`
	IsAvailable  bool   `json:"is_available"`
}

type Order struct {
	ID               int         `json:"id"`
	CustomerID       int         `json:"customer_id"`
	RestaurantID     int         `json:"restaurant_id"`
	RestaurantName   string      `json:"restaurant_name,omitempty"`
	CustomerName     string      `json:"customer_name,omitempty"`
	Status           OrderStatus `json:"status"`
	TotalAmount      Money       `json:"total_amount"`
	PlatformFee      Money       `json:"platform_fee"`
	RestaurantAmount Money       `json:"restaurant_amount"`
	Notes            string      `json:"notes,omitempty"`
	IdempotencyKey   string      `json:"-"`
	QRCode           string      `json:"qr_code,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Items            []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots the menu line at submission time. PriceAtOrder never
// changes afterwards, even if the menu price does.
type OrderItem struct {
	OrderID      int    `json:"order_id"`
	MenuItemID   int    `json:"menu_item_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	PriceAtOrder Money  `json:"price_at_order"`
}
