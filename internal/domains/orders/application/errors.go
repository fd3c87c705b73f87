package application

import "errors"

// Placement failures are deterministic validation outcomes, not transient
// errors: given the same inputs and storage state the same error recurs, so
// none of them is retried.
var (
	// ErrInvalidInput signals the request violated a basic invariant before
	// any lookup ran (blank ids, non-positive or duplicate quantities).
	ErrInvalidInput = errors.New("invalid order input")
	// ErrCustomerNotFound signals the customer id did not resolve.
	ErrCustomerNotFound = errors.New("customer does not exist")
	// ErrNoProducts covers both an empty request and a request where none of
	// the ids resolved; one error kind serves both cases.
	ErrNoProducts = errors.New("products do not exist")
	// ErrProductMismatch signals some but not all requested products resolved.
	ErrProductMismatch = errors.New("product not found")
	// ErrInsufficientStock signals a requested quantity exceeds the quantity
	// available at validation time.
	ErrInsufficientStock = errors.New("insufficient product quantity")
	// ErrStockUpdateFailed signals the order was committed but the follow-up
	// stock decrement failed. The order stands; stock is stale until the
	// decrement is replayed (the durable placement workflow retries it).
	ErrStockUpdateFailed = errors.New("stock update failed after order creation")
)
