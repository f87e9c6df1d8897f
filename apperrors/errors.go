package apperrors

import "errors"

// Sentinel errors surfaced by the service layer. Controllers map these to
// HTTP statuses with errors.Is; anything unmatched is a 500.
var (
	// Not-found family.
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrPaymentNotFound  = errors.New("payment not found")

	// Invalid-state family.
	ErrProductUnavailable = errors.New("product is not available")
	ErrOrderNotPending    = errors.New("order status is not pending payment")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrInvalidTransition  = errors.New("invalid status transition")

	ErrInvalidDateRange = errors.New("invalid date range")

	// Conflict family.
	ErrEmailTaken     = errors.New("email already exists")
	ErrStatusConflict = errors.New("order status changed concurrently")

	// Storage: the backing store aborted a transactional write. The
	// transaction guarantees no partial order-without-history state.
	ErrStorage = errors.New("storage failure")
)
