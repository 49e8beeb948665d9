package order

import "errors"

var (
	// ErrEmptyCart is returned when checkout is requested with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current stage. State is left untouched.
	ErrInvalidTransition = errors.New("operation not allowed in current stage")

	// ErrMissingDetails is wrapped with the names of the blank checkout fields.
	ErrMissingDetails = errors.New("missing required checkout details")

	ErrItemNotFound = errors.New("cart item not found")
)
