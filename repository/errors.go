package repository

import "errors"

var (
	// ErrProductNotFound is returned when a product id does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrLineNotFound is returned when removing a product that is not in the cart.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrInvalidQuantity is returned for cart quantities below 1. Removal is a delete, not a zero line.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInsufficientStock is returned when a cart line would reserve more than the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStaleProduct is returned when a product's sale state changed after it was read.
	ErrStaleProduct = errors.New("product changed since it was read")
)
