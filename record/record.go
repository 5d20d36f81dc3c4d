package record

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedValueShape = errors.New("unsupported value shape")
	ErrInvalidDocument       = errors.New("invalid document")
)

// Record is an ordered view of named properties.
//
// Names must be unique and returned in the same order on every call.
// TypeName is the owner type name used by ignore declarations; untyped
// containers (plain maps, parsed documents) return an empty string.
type Record interface {
	Names() []string
	Get(name string) (any, bool)
	TypeName() string
}

// Property is a single name/value pair of a record.
type Property struct {
	Name  string
	Value any
}

// ShapeError reports a value that cannot be viewed the way the caller needs it.
type ShapeError struct {
	Name string // property path, may be empty for a top level value
	Type string // dynamic type of the offending value
	Want Kind   // kind the caller expected
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrUnsupportedValueShape, e.Type)
	if e.Want != KindUnknown {
		msg += " is not a " + e.Want.String()
	}

	if e.Name != "" {
		return e.Name + ": " + msg
	}

	return msg
}

func (e *ShapeError) Unwrap() error {
	return ErrUnsupportedValueShape
}

// Of adapts a host value to the Record view.
//
// Supported values are Record implementations, structs and pointers to
// structs, maps keyed by strings, gjson objects and yaml mapping nodes.
func Of(v any) (Record, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, &ShapeError{Type: "nil", Want: KindRecord}
	}

	rv = indirect(rv)
	if isNil(rv) {
		return nil, &ShapeError{Type: rv.Type().String(), Want: KindRecord}
	}

	switch t := rv.Interface().(type) {
	case Record:
		return t, nil
	case gjson.Result:
		if !t.IsObject() {
			return nil, &ShapeError{Type: "json " + t.Type.String(), Want: KindRecord}
		}

		return newJSONRecord(t), nil
	case *yaml.Node:
		r, err := newYAMLRecord(t)
		if err != nil {
			return nil, err
		}

		return r, nil
	}

	if isTextual(rv.Type()) {
		return nil, &ShapeError{Type: rv.Type().String(), Want: KindRecord}
	}

	switch rv.Kind() {
	case reflect.Struct:
		return newStructRecord(rv), nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return newMapRecord(rv), nil
		}
	}

	return nil, &ShapeError{Type: rv.Type().String(), Want: KindRecord}
}

// Must is like Of but panics when v is not a record.
func Must(v any) Record {
	r, err := Of(v)
	if err != nil {
		panic(err)
	}

	return r
}

// Properties returns the record properties in record order.
func Properties(r Record) []Property {
	names := r.Names()
	props := make([]Property, 0, len(names))

	for _, name := range names {
		v, _ := r.Get(name)
		props = append(props, Property{Name: name, Value: v})
	}

	return props
}

// Has reports whether the record has a property with the given name.
func Has(r Record, name string) bool {
	_, ok := r.Get(name)
	return ok
}
