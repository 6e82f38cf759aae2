// Package errors provides the error types shared by the catalog layers.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid input")
)

const (
	EntityProduct  = "Product"
	EntityCategory = "Category"
)

// NotFoundError reports a lookup of a missing entity.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Entity, e.ID)
}

// Unwrap makes errors.Is match the sentinel of the entity.
func (e *NotFoundError) Unwrap() error {
	switch e.Entity {
	case EntityProduct:
		return ErrProductNotFound
	case EntityCategory:
		return ErrCategoryNotFound
	default:
		return nil
	}
}

func ProductNotFound(id int64) error {
	return &NotFoundError{Entity: EntityProduct, ID: id}
}

func CategoryNotFound(id int64) error {
	return &NotFoundError{Entity: EntityCategory, ID: id}
}

// InvalidInputError reports a request that violates a field or paging constraint.
// Fields is keyed by field name and may be empty.
type InvalidInputError struct {
	Fields  map[string]string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrInvalidInput.Error()
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidInput creates an InvalidInputError with a formatted message.
func InvalidInput(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
