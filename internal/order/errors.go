package order

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("order not found")

// Cancellation outcomes.
var (
	ErrNotCancellable    = errors.New("order is not cancellable")
	ErrUserAborted       = errors.New("cancellation not confirmed")
	ErrAlreadyInProgress = errors.New("cancellation already in progress")
	ErrExhausted         = errors.New("cancellation failed after retries")
)

// Submission outcomes.
var (
	ErrMissingAddress    = errors.New("delivery address is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrBackend           = errors.New("store backend error")
)

// ExhaustedError is returned when every cancel attempt failed. Err is the
// failure of the last attempt.
type ExhaustedError struct {
	OrderID  int64
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("cancel order %d: %d attempts failed: %v", e.OrderID, e.Attempts, e.Err)
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

func (e *ExhaustedError) Unwrap() error { return e.Err }

// BackendError wraps a transport or non-2xx failure of an order call.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

func (e *BackendError) Unwrap() error { return e.Err }

// IsSilent reports outcomes the UI treats as a no-op rather than a failure.
func IsSilent(err error) bool {
	return errors.Is(err, ErrNotCancellable) ||
		errors.Is(err, ErrUserAborted) ||
		errors.Is(err, ErrAlreadyInProgress)
}

// IsValidation reports submission errors raised before any network call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingAddress) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInsufficientStock)
}

// UserMessage is the single message shown for a failed operation, or "" when
// nothing should be shown.
func UserMessage(err error) string {
	switch {
	case err == nil, IsSilent(err):
		return ""
	case errors.Is(err, ErrExhausted):
		return "Failed to cancel order. Please try again shortly."
	case errors.Is(err, ErrMissingAddress):
		return "Please enter a delivery address."
	case errors.Is(err, ErrInvalidQuantity):
		return "Quantity must be greater than 0."
	case errors.Is(err, ErrInsufficientStock):
		return "Not enough stock for the requested quantity."
	case errors.Is(err, ErrBackend):
		return "Failed to place order."
	default:
		return "Something went wrong. Please try again."
	}
}

// Code is a stable machine-readable name for an order error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotCancellable):
		return "not_cancellable"
	case errors.Is(err, ErrUserAborted):
		return "user_aborted"
	case errors.Is(err, ErrAlreadyInProgress):
		return "already_in_progress"
	case errors.Is(err, ErrExhausted):
		return "exhausted"
	case errors.Is(err, ErrMissingAddress):
		return "missing_address"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrBackend):
		return "backend"
	default:
		return ""
	}
}
