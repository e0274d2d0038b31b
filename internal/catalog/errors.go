package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a product with the given ID is not found.
var ErrNotFound = errors.New("product not found")

// ErrEmptyID is returned when trying to store a product with an empty ID.
var ErrEmptyID = errors.New("empty product ID")

// ErrConflict is returned when a product ID is already taken.
var ErrConflict = errors.New("product ID already exists")

// ErrInvalid matches every ValidationError.
var ErrInvalid = errors.New("invalid product")

// NotFoundError carries the ID that could not be resolved.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError is returned when an item with the same ID already exists.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product %q already exists", e.ID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError is returned when a payload breaks a field constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
