package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found. Soft-deleted
	// rows are reported as not found as well.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError is a caller mistake surfaced as HTTP 400 at the boundary.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Invalid builds a ValidationError with a caller-facing message.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InsufficientStock is returned when a checkout or cart add requests more
// units than the product currently has.
func InsufficientStock(productName string) error {
	return Invalid("Insufficient stock for product %s", productName)
}
