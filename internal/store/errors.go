package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert violates the email
// unique constraint.
var ErrDuplicateEmail = errors.New("duplicate email")

// ErrDuplicateUsername is returned when an insert violates the username
// unique constraint.
var ErrDuplicateUsername = errors.New("duplicate username")
