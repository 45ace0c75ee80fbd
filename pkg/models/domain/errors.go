package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks input-shape violations such as an out-of-range maturity.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned by stores when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// InvalidField builds an ErrInvalidInput error naming the offending field and value.
func InvalidField(field string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidInput, field, value)
}
