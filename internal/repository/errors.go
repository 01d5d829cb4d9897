package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnknownBackend is returned by Open for an unsupported storage name
	ErrUnknownBackend = errors.New("unknown storage backend")
)
