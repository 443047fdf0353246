package cart

import "context"

// Store persists session carts so a reconnecting client gets the same cart
// back. Load returns a fresh empty cart when none is stored.
type Store interface {
	Load(ctx context.Context, customerID int) (Cart, error)
	Save(ctx context.Context, customerID int, c Cart) error
	Clear(ctx context.Context, customerID int) error
}
