package domain

import "errors"

// ErrNotFound is returned when an update or delete targets an id that
// does not exist in the store.
var ErrNotFound = errors.New("resource not found")
