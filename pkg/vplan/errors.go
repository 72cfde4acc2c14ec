package vplan

import (
	"errors"
	"fmt"
)

// ErrInvalidData is matched by every error reporting a feed that does not
// have the expected top level shape.
var ErrInvalidData = errors.New("received invalid data from API")

// SchemaError names the first required element that was missing.
type SchemaError struct {
	Path string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrInvalidData, e.Path)
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidData
}
