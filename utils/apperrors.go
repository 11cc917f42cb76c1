// File: talentshout/utils/apperrors.go
package utils

import "fmt"

// ValidationError reports malformed input. It is raised before any external
// call is attempted, and carries the offending field when known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// InvalidStateTransitionError reports a booking (or application) transition
// that is not permitted from the current status. These indicate either a
// client bug or a lost race, so callers are expected to log them.
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// NotFoundError reports an entity that is absent or not visible to the caller.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// PermissionError reports a caller acting outside its role.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// AlreadyProcessedError signals an idempotent retry of an operation that has
// already succeeded. The prior result is attached so handlers can return it
// rather than an error body.
type AlreadyProcessedError struct {
	Message string
	Result  any
}

func (e *AlreadyProcessedError) Error() string {
	return e.Message
}

// PaymentDeclinedError is a definitive gateway rejection.
type PaymentDeclinedError struct {
	Gateway string
	Reason  string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined by %s: %s", e.Gateway, e.Reason)
}

// PaymentTimeoutError means the gateway gave no definitive answer. The
// booking must stay in pending_payment when this is returned.
type PaymentTimeoutError struct {
	Gateway string
}

func (e *PaymentTimeoutError) Error() string {
	return fmt.Sprintf("payment via %s timed out before a definitive result", e.Gateway)
}
