// Package runtime provides the database sessions the workload runs against.
package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a query matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidModel is returned when an invalid model is provided.
	ErrInvalidModel = errors.New("invalid model")

	// ErrNoConnection is returned when the session has already been closed.
	ErrNoConnection = errors.New("no database connection")

	// ErrUnsupportedDriver is returned for a driver name Connect does not know.
	ErrUnsupportedDriver = errors.New("unsupported driver")
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// QueryError represents a query execution error.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
