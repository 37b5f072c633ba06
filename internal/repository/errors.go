package repository

import "errors"

// ErrNotFound is the repository-level sentinel returned when a query for a
// single entity finds no rows. The service layer translates it into the
// domain-level not-found error, keeping business logic decoupled from the
// database driver's own errors (e.g. sql.ErrNoRows).
var ErrNotFound = errors.New("repository: not found")
