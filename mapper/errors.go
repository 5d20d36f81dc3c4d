package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrMissingSourceProperty = errors.New("missing source property")
	ErrTypeConversion        = errors.New("type conversion error")
	ErrNotAStruct            = errors.New("destination is not a struct")
	ErrUnsupportedField      = errors.New("unsupported destination type")
	ErrInvalidTag            = errors.New("invalid mix tag")
)

// MissingPropertyError reports a destination field without a source property.
type MissingPropertyError struct {
	Name        string   // property path of the destination field
	Key         string   // source key that was looked up
	Suggestions []string // closest source names
}

func (e *MissingPropertyError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Name, ErrMissingSourceProperty, e.Key)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

func (e *MissingPropertyError) Unwrap() error {
	return ErrMissingSourceProperty
}

// ConversionError reports a source value that cannot become the destination type.
type ConversionError struct {
	Path     string
	From, To reflect.Type
	Err      error // cause, may be nil
}

func (e *ConversionError) Error() string {
	from := "nil"
	if e.From != nil {
		from = e.From.String()
	}

	msg := fmt.Sprintf("%s: cannot convert %s to %s", ErrTypeConversion, from, e.To)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeConversion}
	}

	return []error{ErrTypeConversion, e.Err}
}
