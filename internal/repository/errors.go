package repository

import "errors"

// Common repository errors
var (
	// ErrListNotFound is returned when a list is not found
	ErrListNotFound = errors.New("list not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrListHasTasks is returned by Delete under the protect policy
	// while the list still contains tasks
	ErrListHasTasks = errors.New("list still has tasks")
)
