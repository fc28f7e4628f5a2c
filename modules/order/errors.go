package order

import (
	"fmt"

	"github.com/example/ecommerce-api/domain/errs"
)

var (
	// ErrOrderNotFound is returned when no order has the requested id.
	ErrOrderNotFound = fmt.Errorf("order %w", errs.ErrNotFound)
	// ErrOrderItemNotFound is returned when an order item id matches nothing.
	ErrOrderItemNotFound = fmt.Errorf("order item %w", errs.ErrNotFound)
	// ErrInvalidQuantity is returned for a zero or negative quantity.
	ErrInvalidQuantity = errs.NewValidationError("quantity", "must be a positive integer")
	// ErrMissingProduct is returned when an item names no product.
	ErrMissingProduct = errs.NewValidationError("product", "is required")
	// ErrMissingStatus is returned when a status update carries no status.
	ErrMissingStatus = errs.NewValidationError("status", "is required")
)
