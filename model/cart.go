package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInCart is returned when removing a product the cart does not hold.
var ErrNotInCart = errors.New("product not in cart")

// ErrInsufficientQuantity is returned when removing more of a product than
// the cart holds.
var ErrInsufficientQuantity = errors.New("not enough of product in cart")

// ShoppingCart is a bag of product -> quantity owned by a single client.
//
// Iteration order is the order products were first added, so receipts and
// history snapshots come out in a stable, caller-visible order. Quantities
// are always positive: removing a product down to zero deletes its entry.
type ShoppingCart struct {
	items map[*Product]int
	order []*Product
}

func NewShoppingCart() *ShoppingCart {
	return &ShoppingCart{items: make(map[*Product]int)}
}

// Add puts amount more of product into the cart. Validating that amount is
// positive is the caller's job; the shop rejects non-positive amounts before
// they reach the cart.
func (c *ShoppingCart) Add(product *Product, amount int) {
	if _, ok := c.items[product]; !ok {
		c.order = append(c.order, product)
	}
	c.items[product] += amount
}

// Remove takes amount of product out of the cart. An exact match deletes the
// entry entirely.
func (c *ShoppingCart) Remove(product *Product, amount int) error {
	have, ok := c.items[product]
	if !ok {
		return ErrNotInCart
	}
	if amount > have {
		return ErrInsufficientQuantity
	}
	if amount == have {
		delete(c.items, product)
		c.drop(product)
		return nil
	}
	c.items[product] -= amount
	return nil
}

// Empty removes every entry from the cart.
func (c *ShoppingCart) Empty() {
	c.items = make(map[*Product]int)
	c.order = nil
}

// Value is the sum of unit price times quantity over all entries.
func (c *ShoppingCart) Value() float64 {
	var value float64
	for product, quantity := range c.items {
		value += product.Price() * float64(quantity)
	}
	return value
}

// Quantity reports how many of product the cart holds, zero if absent.
func (c *ShoppingCart) Quantity(product *Product) int {
	return c.items[product]
}

// Products returns the products currently held, in first-added order.
func (c *ShoppingCart) Products() []*Product {
	out := make([]*Product, len(c.order))
	copy(out, c.order)
	return out
}

func (c *ShoppingCart) Len() int { return len(c.items) }

// Verbal renders the cart contents as "name: quantity" lines in first-added
// order.
func (c *ShoppingCart) Verbal() string {
	var b strings.Builder
	for _, p := range c.order {
		fmt.Fprintf(&b, "%s: %d\n", p.Name(), c.items[p])
	}
	return b.String()
}

func (c *ShoppingCart) drop(product *Product) {
	for i, p := range c.order {
		if p == product {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
