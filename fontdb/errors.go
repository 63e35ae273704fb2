package fontdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get for unknown names.
	ErrNotFound = errors.New("fontdb: font not found")

	// ErrNoMatch is returned when no registered font matches a query.
	ErrNoMatch = errors.New("fontdb: no font matches query")

	// ErrEmptyName is returned when a font is registered without a name.
	ErrEmptyName = errors.New("fontdb: empty font name")
)

// QueryError reports a failed query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("fontdb: query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
