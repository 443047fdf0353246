package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is the payload published to the orders topic on checkout and
// on every status transition.
type OrderEvent struct {
	Type             string      `json:"type"`
	OrderID          int         `json:"order_id"`
	CustomerID       int         `json:"customer_id"`
	RestaurantID     int         `json:"restaurant_id"`
	Status           OrderStatus `json:"status"`
	TotalAmount      Money       `json:"total_amount"`
	PlatformFee      Money       `json:"platform_fee"`
	RestaurantAmount Money       `json:"restaurant_amount"`
	Timestamp        time.Time   `json:"timestamp"`
}
