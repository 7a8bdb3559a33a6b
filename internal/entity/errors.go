// Package entity validates, constructs and patches the tracker's records.
// Every record leaves this package satisfying its invariants; records read
// back from storage are not re-checked here.
package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput rejects a whole construction input. Nothing is created.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidField rejects a patch because of one named field. The entity is left unchanged.
	ErrInvalidField = errors.New("invalid field")
)

// InputError describes why a construction input was rejected.
type InputError struct {
	Entity string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s input: %s", e.Entity, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FieldError names the first field of a patch that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidField.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func inputError(entity string, fe *FieldError) error {
	return &InputError{Entity: entity, Reason: fe.Field + " " + fe.Reason}
}
