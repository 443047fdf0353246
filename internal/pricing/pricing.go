package pricing

import (
	"plateful/internal/cart"
	"plateful/internal/domain"
)

// DefaultCommissionBP is the platform commission in basis points (15%).
const DefaultCommissionBP = 1500

type Quote struct {
	Subtotal         domain.Money `json:"subtotal"`
	PlatformFee      domain.Money `json:"platform_fee"`
	RestaurantAmount domain.Money `json:"restaurant_amount"`
}

type Engine struct {
	rateBP int64
}

func NewEngine(rateBP int64) *Engine {
	if rateBP <= 0 {
		rateBP = DefaultCommissionBP
	}
	return &Engine{rateBP: rateBP}
}

// Quote derives the three-way split from the cart snapshot. The fee is
// rounded half up; the restaurant amount is always the remainder, so
// fee + restaurant == subtotal holds exactly for every subtotal.
func (e *Engine) Quote(c cart.Cart) Quote {
	var subtotal domain.Money
	for _, item := range c.Items {
		subtotal += item.UnitPrice * domain.Money(item.Quantity)
	}

	fee := domain.Money((int64(subtotal)*e.rateBP + 5000) / 10000)
	return Quote{
		Subtotal:         subtotal,
		PlatformFee:      fee,
		RestaurantAmount: subtotal - fee,
	}
}
