package service

import "errors"

// ErrForbidden is returned when a user tries to act on another user's resource
// or lacks the role an operation requires.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition is returned when a status change would move an entity
// out of a terminal state.
var ErrInvalidTransition = errors.New("invalid status transition")
