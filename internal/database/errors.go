package database

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when an operation targets an id with no base row.
var ErrItemNotFound = errors.New("catalog item not found")

// ErrKindMismatch is returned when an update's variant has no matching
// specialization row for the id.
var ErrKindMismatch = errors.New("item kind does not match the stored specialization")

// ErrCorruptRow is returned when a base row lacks the specialization its kind requires.
var ErrCorruptRow = errors.New("item row is missing its specialization")

// PersistenceError wraps any store failure. The enclosing transaction has
// been rolled back when it is returned from a write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("catalog %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err is, or wraps, a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
