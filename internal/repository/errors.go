package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a unique constraint
// (email, username, slug, donation id, favorite pair).
var ErrConflict = errors.New("conflict")
