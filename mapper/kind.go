package mapper

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"objects-mixer/primitive"
)

//go:generate go tool stringer -type=FieldKind -output=kind_string.go

// FieldKind tells how a destination value is rebuilt from a source value.
type FieldKind int

const (
	FieldUnknown    FieldKind = iota
	FieldScalar               // converted from a scalar source
	FieldIdentifier           // uuid.UUID, parsed from text, uuid.Nil when unparsable
	FieldStruct               // projected from a nested record
	FieldSlice                // projected element by element from a list
	FieldArray                // like FieldSlice with a fixed length
	FieldMap                  // string keyed map projected from a record
	FieldPointer              // allocated and projected into its element
	FieldInterface            // receives the materialized source value

	// FieldTotal is a constant that represents the total number of kinds defined
	FieldTotal = int(iota)
)

var (
	identifierType      = reflect.TypeFor[uuid.UUID]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Dispatch classifies a destination type.
func Dispatch(t reflect.Type) (FieldKind, error) {
	if t == identifierType {
		return FieldIdentifier, nil
	}

	switch t.Kind() {
	case reflect.Interface:
		return FieldInterface, nil
	case reflect.Pointer:
		return FieldPointer, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return FieldScalar, nil
		}

		return FieldSlice, nil
	case reflect.Array:
		return FieldArray, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return FieldUnknown, fmt.Errorf("%w: map key of %s is not a string", ErrUnsupportedField, t)
		}

		return FieldMap, nil
	case reflect.Struct:
		if isScalarStruct(t) {
			return FieldScalar, nil
		}

		return FieldStruct, nil
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return FieldUnknown, fmt.Errorf("%w: %s", ErrUnsupportedField, t)
	}

	return FieldScalar, nil
}

// isScalarStruct reports whether a struct type is a single value, like time.Time.
func isScalarStruct(t reflect.Type) bool {
	return primitive.FromReflectType(t) != 0 || reflect.PointerTo(t).Implements(textUnmarshalerType)
}
