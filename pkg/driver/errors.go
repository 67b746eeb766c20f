package driver

import (
	"errors"
	"fmt"
)

// ErrUnknownDriver matches every *UnknownDriverError via errors.Is.
var ErrUnknownDriver = errors.New("unknown driver type")

// UnknownDriverError is returned when a driver code is not registered.
type UnknownDriverError struct {
	Type      string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown driver type %q\nAvailable drivers: %v\nHint: Check the datasource type in leapmeta.yaml", e.Type, e.Available)
}

// Is reports whether target is ErrUnknownDriver.
func (e *UnknownDriverError) Is(target error) bool {
	return target == ErrUnknownDriver
}

// DuplicateDriverError is returned when two drivers claim the same code or alias.
type DuplicateDriverError struct {
	Code     string
	Existing string
	Incoming string
}

func (e *DuplicateDriverError) Error() string {
	return fmt.Sprintf("driver code %q is claimed by both %s and %s", e.Code, e.Existing, e.Incoming)
}
