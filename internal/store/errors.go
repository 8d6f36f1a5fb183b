package store

import "errors"

// ErrNotFound is returned when a record does not exist.
// Ownership-scoped lookups also return it when the record exists but
// belongs to a different owner, so callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")
