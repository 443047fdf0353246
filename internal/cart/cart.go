package cart

import (
	"errors"

	"plateful/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrDifferentRestaurant = errors.New("item belongs to a different restaurant")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrItemNotInCart       = errors.New("item is not in the cart")
)

type Item struct {
	MenuItemID   int          `json:"menu_item_id"`
	Name         string       `json:"name"`
	UnitPrice    domain.Money `json:"unit_price"`
	Quantity     int          `json:"quantity"`
	RestaurantID int          `json:"restaurant_id"`
}

// Cart is a session-scoped selection of menu items bound to exactly one
// restaurant. RestaurantID is zero while the cart is empty. Token identifies
// one cart lifetime: it is minted on construction and survives every
// mutation, so two submissions of the same cart carry the same checkout
// idempotency key. Clear mints a fresh one.
type Cart struct {
	Items        []Item `json:"items"`
	RestaurantID int    `json:"restaurant_id"`
	Token        string `json:"token"`
}

func New() Cart {
	return Cart{Token: uuid.NewString()}
}

// Add appends the item with quantity 1, or bumps the quantity if it is
// already present. Adding an item from another restaurant while the cart is
// non-empty leaves the cart untouched.
func (c Cart) Add(item Item) (Cart, error) {
	if len(c.Items) > 0 && item.RestaurantID != c.RestaurantID {
		return c, ErrDifferentRestaurant
	}

	for i, existing := range c.Items {
		if existing.MenuItemID == item.MenuItemID {
			items := make([]Item, len(c.Items))
			copy(items, c.Items)
			items[i].Quantity++
			c.Items = items
			return c, nil
		}
	}

	item.Quantity = 1
	c.RestaurantID = item.RestaurantID
	c.Items = append(append([]Item(nil), c.Items...), item)
	return c, nil
}

func (c Cart) Remove(menuItemID int) (Cart, error) {
	items := make([]Item, 0, len(c.Items))
	found := false
	for _, existing := range c.Items {
		if existing.MenuItemID == menuItemID {
			found = true
			continue
		}
		items = append(items, existing)
	}
	if !found {
		return c, ErrItemNotInCart
	}

	c.Items = items
	if len(c.Items) == 0 {
		c.RestaurantID = 0
	}
	return c, nil
}

// SetQuantity replaces the item's quantity. Callers own the floor: a
// quantity below 1 is rejected, never clamped.
func (c Cart) SetQuantity(menuItemID, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}

	for i, existing := range c.Items {
		if existing.MenuItemID == menuItemID {
			items := make([]Item, len(c.Items))
			copy(items, c.Items)
			items[i].Quantity = quantity
			c.Items = items
			return c, nil
		}
	}
	return c, ErrItemNotInCart
}

func (c Cart) Clear() Cart {
	return New()
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
