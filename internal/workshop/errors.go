package workshop

import (
	"errors"
	"fmt"
)

// Error taxonomy for the allocation / lifecycle engine. Handlers map these
// to HTTP statuses; everything else is passed through unchanged.

// ValidationError means the input itself is unacceptable (bad quantity,
// missing name, date in the future). Never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// GuardViolation means a state rule blocked the operation. It carries the
// specific unmet conditions so the caller can show them, not a generic failure.
type GuardViolation struct {
	Reason     string
	Conditions []string
}

func (e *GuardViolation) Error() string {
	if len(e.Conditions) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Conditions)
}

// ReferentialConflict means a delete was blocked by an existing reference
type ReferentialConflict struct {
	Reason string
}

func (e *ReferentialConflict) Error() string {
	return e.Reason
}

// NotFoundError identifies a missing job/item/order id
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
