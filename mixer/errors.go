package mixer

import (
	"errors"
	"fmt"

	"objects-mixer/record"
)

var (
	ErrAmbiguousIgnoreExpression = errors.New("ambiguous ignore expression")
	ErrListLengthMismatch        = errors.New("list length mismatch")
)

// ListLengthError reports a shared list property whose sides cannot be zipped.
type ListLengthError struct {
	Name        string
	Left, Right int
}

func (e *ListLengthError) Error() string {
	return fmt.Sprintf("%s: %s: left has %d items, right has %d", e.Name, ErrListLengthMismatch, e.Left, e.Right)
}

func (e *ListLengthError) Unwrap() error {
	return ErrListLengthMismatch
}

// shapeAt prefixes err with the property path. A shape error raised
// without a name gets the path as its name.
func shapeAt(path string, err error) error {
	if path == "" {
		return err
	}

	if se, ok := err.(*record.ShapeError); ok && se.Name == "" {
		return &record.ShapeError{Name: path, Type: se.Type, Want: se.Want}
	}

	return fmt.Errorf("%s: %w", path, err)
}
