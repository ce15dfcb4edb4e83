package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAccumulates(t *testing.T) {
	apple := NewProduct("Apple", 0.76)
	pineapple := NewProduct("Pineapple", 2.15)

	cart := NewShoppingCart()
	cart.Add(apple, 10)
	cart.Add(pineapple, 2)
	cart.Add(apple, 5)

	assert.Equal(t, 15, cart.Quantity(apple))
	assert.Equal(t, 2, cart.Quantity(pineapple))
	assert.Equal(t, []*Product{apple, pineapple}, cart.Products())
}

func TestCartRemove(t *testing.T) {
	apple := NewProduct("Apple", 0.76)
	banana := NewProduct("Banana", 0.89)

	cart := NewShoppingCart()
	cart.Add(apple, 5)
	cart.Add(banana, 10)

	require.NoError(t, cart.Remove(apple, 3))
	require.NoError(t, cart.Remove(banana, 1))

	assert.Equal(t, 2, cart.Quantity(apple))
	assert.Equal(t, 9, cart.Quantity(banana))
}

func TestCartRemoveExactMatchDeletesEntry(t *testing.T) {
	apple := NewProduct("Apple", 0.76)

	cart := NewShoppingCart()
	cart.Add(apple, 5)
	require.NoError(t, cart.Remove(apple, 5))

	assert.Zero(t, cart.Quantity(apple))
	assert.Zero(t, cart.Len())
	assert.Empty(t, cart.Products())
}

func TestCartRemoveFailures(t *testing.T) {
	apple := NewProduct("Apple", 0.76)
	banana := NewProduct("Banana", 0.89)

	cart := NewShoppingCart()
	cart.Add(apple, 2)

	assert.ErrorIs(t, cart.Remove(banana, 1), ErrNotInCart)
	assert.ErrorIs(t, cart.Remove(apple, 3), ErrInsufficientQuantity)
	// Failed removals leave the cart alone.
	assert.Equal(t, 2, cart.Quantity(apple))
}

func TestCartTwinProductsAreDistinctEntries(t *testing.T) {
	// Same name and price, still two catalog entries.
	a := NewProduct("Apple", 0.76)
	b := NewProduct("Apple", 0.76)

	cart := NewShoppingCart()
	cart.Add(a, 1)
	cart.Add(b, 2)

	assert.Equal(t, 2, cart.Len())
	assert.Equal(t, 1, cart.Quantity(a))
	assert.Equal(t, 2, cart.Quantity(b))
}

func TestCartValue(t *testing.T) {
	tv := NewProduct("TV", 1399)
	hdmi := NewProduct("HDMI cable", 10.99)

	cart := NewShoppingCart()
	assert.Zero(t, cart.Value())

	cart.Add(tv, 1)
	cart.Add(hdmi, 1)
	assert.InDelta(t, 1409.99, cart.Value(), 1e-9)

	// Value is a pure read.
	assert.Equal(t, 1, cart.Quantity(tv))
}

func TestCartVerbal(t *testing.T) {
	apple := NewProduct("Apple", 0.76)
	pineapple := NewProduct("Pineapple", 2.15)

	cart := NewShoppingCart()
	cart.Add(apple, 10)
	cart.Add(pineapple, 2)

	assert.Equal(t, "Apple: 10\nPineapple: 2\n", cart.Verbal())
}

func TestCartEmpty(t *testing.T) {
	apple := NewProduct("Apple", 0.76)

	cart := NewShoppingCart()
	cart.Add(apple, 4)
	cart.Empty()

	assert.Zero(t, cart.Len())
	assert.Zero(t, cart.Value())
	assert.Empty(t, cart.Products())
}
