package repository

import "errors"

var (
	// ErrNotFound is returned by writes that target a missing row.
	ErrNotFound = errors.New("repository: not found")
	// ErrCardCheckedOut is returned when a card held by a working set is modified.
	ErrCardCheckedOut = errors.New("repository: card is checked out")
)
