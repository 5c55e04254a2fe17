package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateKey indicates an insert violated a uniqueness constraint.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)
