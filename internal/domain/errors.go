package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrPastPickupTime     = errors.New("pickup time must be in the future")
	ErrPaymentNotResolved = errors.New("payment method not chosen")
	ErrOrderNotFound      = errors.New("order not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrUpdateInProgress   = errors.New("order update already in progress")
	ErrForbidden          = errors.New("operation requires staff role")
)

// InvalidTransitionError rejects any status change outside the fixed
// successor set queued -> preparing -> ready -> completed.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// PriceOutOfRangeError enforces the menu price policy at the store
// boundary rather than in a client form.
type PriceOutOfRangeError struct {
	Price int64
}

func (e *PriceOutOfRangeError) Error() string {
	return fmt.Sprintf("price %d out of range %d-%d", e.Price, MinMenuPrice, MaxMenuPrice)
}

// AllocationError means the token allocator was unavailable; no order
// row is created when it occurs.
type AllocationError struct {
	Err error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("token allocation failed: %v", e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed store operation. The caller keeps
// its prior state; nothing is partially committed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
