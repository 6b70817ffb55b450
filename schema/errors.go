package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum is matched by every *EnumError.
var ErrInvalidEnum = errors.New("invalid enum value")

// EnumError reports a raw value that is not a member of the named enum.
type EnumError struct {
	Enum  string
	Value string
}

// Error implements the error interface
func (e *EnumError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", e.Value, e.Enum)
}

// Unwrap returns ErrInvalidEnum so callers can use errors.Is.
func (e *EnumError) Unwrap() error {
	return ErrInvalidEnum
}
