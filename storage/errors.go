package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a node or run is not found.
	ErrNotFound = errors.New("entity not found")

	// ErrNoConnection is returned when a sink has no backing connection.
	ErrNoConnection = errors.New("storage: no connection")
)
