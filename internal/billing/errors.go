package billing

import "errors"

// Validation and state errors surfaced by the till session. Handlers map
// these onto HTTP status codes; everything else the session absorbs and logs.
var (
	// ErrNoTableSelected is returned by cart operations and save when the
	// session has no active table.
	ErrNoTableSelected = errors.New("no table selected")

	// ErrEmptyCart is returned by save when there is nothing to bill.
	// No I/O is performed.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSwitchInProgress is returned synchronously when a table switch is
	// requested while another one is still in flight (or within its
	// cooldown). The request is dropped, never queued.
	ErrSwitchInProgress = errors.New("table switch already in progress")

	// ErrInvalidQuantity is returned by the aggregate builder for a line
	// with a quantity below 1.
	ErrInvalidQuantity = errors.New("line quantity must be at least 1")

	// ErrInvalidPrice is returned by the aggregate builder for a line with
	// a negative price.
	ErrInvalidPrice = errors.New("line price must not be negative")
)
