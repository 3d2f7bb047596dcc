// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every construction-time validation failure.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownMode is returned when a redshift mode name is not recognised.
	ErrUnknownMode = errors.New("unknown mode")
)

// ArgumentError identifies the field and the constraint a value violated.
type ArgumentError struct {
	Entity     string
	Field      string
	Constraint string
	Value      float64
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s must be %s (got %g)", e.Entity, e.Field, e.Constraint, e.Value)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// IsInvalidArgument reports whether err comes from a validation failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// LineError attaches the position of the offending record to a read error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
