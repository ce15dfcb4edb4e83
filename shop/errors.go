package shop

import (
	"errors"

	"eshop/model"
)

// ErrInsufficientStock is returned when a cart-add asks for more of a product
// than the inventory has left.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrClientNotRegistered is returned when an operation targets a client the
// shop has not registered (or has deleted).
var ErrClientNotRegistered = errors.New("client not registered")

// ErrProductNotFound is returned when an operation references a product with
// no inventory entry.
var ErrProductNotFound = errors.New("product not in inventory")

// ErrInsufficientFunds is returned when the discounted cart value exceeds the
// client's balance. The cart and its reservation are left intact so the
// client can adjust and retry.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount is returned for non-positive cart amounts and negative
// restock amounts before any state is touched.
var ErrInvalidAmount = errors.New("invalid amount")

// Cart-level rejections surface unchanged so callers can match on one set.
var (
	ErrNotInCart            = model.ErrNotInCart
	ErrInsufficientQuantity = model.ErrInsufficientQuantity
)
