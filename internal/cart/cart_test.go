package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.RestaurantID)
	assert.NotEmpty(t, c.Token)
}

func TestCart_Add(t *testing.T) {
	burger := Item{MenuItemID: 1, Name: "Burger", UnitPrice: 899, RestaurantID: 10}
	fries := Item{MenuItemID: 2, Name: "Fries", UnitPrice: 350, RestaurantID: 10}
	sushi := Item{MenuItemID: 7, Name: "Sushi Set", UnitPrice: 2400, RestaurantID: 20}

	t.Run("first_item_binds_restaurant", func(t *testing.T) {
		c, err := New().Add(burger)
		require.NoError(t, err)
		assert.Equal(t, 10, c.RestaurantID)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 1, c.Items[0].Quantity)
	})

	t.Run("same_item_increments_quantity", func(t *testing.T) {
		c, err := New().Add(burger)
		require.NoError(t, err)
		c, err = c.Add(burger)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
	})

	t.Run("second_restaurant_rejected_cart_untouched", func(t *testing.T) {
		c, err := New().Add(burger)
		require.NoError(t, err)

		after, err := c.Add(sushi)
		assert.ErrorIs(t, err, ErrDifferentRestaurant)
		assert.Equal(t, c, after)
	})

	t.Run("second_item_same_restaurant", func(t *testing.T) {
		c, err := New().Add(burger)
		require.NoError(t, err)
		c, err = c.Add(fries)
		require.NoError(t, err)
		assert.Len(t, c.Items, 2)
		assert.Equal(t, 10, c.RestaurantID)
	})

	t.Run("original_value_not_mutated", func(t *testing.T) {
		base, err := New().Add(burger)
		require.NoError(t, err)

		bumped, err := base.Add(burger)
		require.NoError(t, err)
		assert.Equal(t, 1, base.Items[0].Quantity)
		assert.Equal(t, 2, bumped.Items[0].Quantity)
	})
}

func TestCart_Remove(t *testing.T) {
	burger := Item{MenuItemID: 1, Name: "Burger", UnitPrice: 899, RestaurantID: 10}
	fries := Item{MenuItemID: 2, Name: "Fries", UnitPrice: 350, RestaurantID: 10}

	t.Run("removes_item", func(t *testing.T) {
		c, _ := New().Add(burger)
		c, _ = c.Add(fries)

		c, err := c.Remove(1)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].MenuItemID)
		assert.Equal(t, 10, c.RestaurantID)
	})

	t.Run("last_item_resets_restaurant", func(t *testing.T) {
		c, _ := New().Add(burger)

		c, err := c.Remove(1)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, 0, c.RestaurantID)
	})

	t.Run("missing_item", func(t *testing.T) {
		c, _ := New().Add(burger)
		_, err := c.Remove(99)
		assert.ErrorIs(t, err, ErrItemNotInCart)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	burger := Item{MenuItemID: 1, Name: "Burger", UnitPrice: 899, RestaurantID: 10}

	tests := []struct {
		name          string
		menuItemID    int
		quantity      int
		expectedError error
		expectedQty   int
	}{
		{name: "success", menuItemID: 1, quantity: 5, expectedQty: 5},
		{name: "quantity_zero_rejected", menuItemID: 1, quantity: 0, expectedError: ErrInvalidQuantity},
		{name: "quantity_negative_rejected", menuItemID: 1, quantity: -3, expectedError: ErrInvalidQuantity},
		{name: "missing_item", menuItemID: 99, quantity: 2, expectedError: ErrItemNotInCart},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c, _ := New().Add(burger)
			updated, err := c.SetQuantity(testCase.menuItemID, testCase.quantity)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedQty, updated.Items[0].Quantity)
		})
	}
}

func TestCart_Clear(t *testing.T) {
	burger := Item{MenuItemID: 1, Name: "Burger", UnitPrice: 899, RestaurantID: 10}
	c, _ := New().Add(burger)

	cleared := c.Clear()
	assert.True(t, cleared.IsEmpty())
	assert.Equal(t, 0, cleared.RestaurantID)
	assert.NotEmpty(t, cleared.Token)
	// A cleared cart is a new submission, so its idempotency token rotates.
	assert.NotEqual(t, c.Token, cleared.Token)
}
