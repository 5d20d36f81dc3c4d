package record

import (
	"encoding"
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// PlaceholderPattern matches a brace-delimited placeholder such as {Qty} or
// {Area of Wall}. The first submatch is the placeholder name.
var PlaceholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

var (
	recordType        = reflect.TypeFor[Record]()
	jsonResultType    = reflect.TypeFor[gjson.Result]()
	yamlNodeType      = reflect.TypeFor[*yaml.Node]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// KindOf classifies v.
func KindOf(v any) Kind {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return KindNull
	}

	rv = indirect(rv)
	if isNil(rv) {
		return KindNull
	}

	switch t := rv.Interface().(type) {
	case Record:
		return KindRecord
	case gjson.Result:
		return jsonKind(t)
	case *yaml.Node:
		return yamlKind(t)
	}

	if isTextual(rv.Type()) {
		return scalarKind(textOf(rv))
	}

	switch rv.Kind() {
	case reflect.Struct:
		return KindRecord
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindRecord
		}

		return KindUnknown
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return KindUnknown
	}

	return scalarKind(textOf(rv))
}

// IsEmpty reports whether v is null or its text is the empty string.
// Lists and records are never empty, whatever their length.
func IsEmpty(v any) bool {
	switch KindOf(v) {
	case KindNull:
		return true
	case KindList, KindRecord:
		return false
	}

	return Text(v) == ""
}

// IsFormula reports whether v is a scalar holding a placeholder.
func IsFormula(v any) bool {
	return KindOf(v) == KindFormula
}

// Text returns the textual form of a scalar value. Null is "".
func Text(v any) string {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return ""
	}

	rv = indirect(rv)
	if isNil(rv) {
		return ""
	}

	return textOf(rv)
}

// List returns the elements of a list value.
func List(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}

	rv = indirect(rv)
	if isNil(rv) {
		return nil, false
	}

	switch t := rv.Interface().(type) {
	case []any:
		return t, true
	case gjson.Result:
		if !t.IsArray() {
			return nil, false
		}

		items := t.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonValue(item)
		}

		return out, true
	case *yaml.Node:
		n := resolveNode(t)
		if n == nil || n.Kind != yaml.SequenceNode {
			return nil, false
		}

		out := make([]any, len(n.Content))
		for i, item := range n.Content {
			v, err := yamlValue(item)
			if err != nil {
				// left as a node, Of reports the error when the item is used
				v = item
			}

			out[i] = v
		}

		return out, true
	}

	if isTextual(rv.Type()) {
		return nil, false
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

func scalarKind(text string) Kind {
	if PlaceholderPattern.MatchString(text) {
		return KindFormula
	}

	return KindScalar
}

func textOf(rv reflect.Value) string {
	switch t := rv.Interface().(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case gjson.Result:
		return t.String()
	case *yaml.Node:
		n := resolveNode(t)
		if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
			return ""
		}

		return n.Value
	case encoding.TextMarshaler:
		if b, err := t.MarshalText(); err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return t.String()
	}

	if reflect.PointerTo(rv.Type()).Implements(textMarshalerType) {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)

		if b, err := p.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Float32, reflect.Float64:
		// no exponent: 9007199254740992, not 9.007199254740992e+15
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())
	}

	return fmt.Sprint(rv.Interface())
}

// isTextual reports whether values of t are scalars even though their Go
// kind is a container: byte slices and text marshalers (time.Time, uuid.UUID).
func isTextual(t reflect.Type) bool {
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return true
	}

	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

// adapted reports whether t has a dedicated record view and must not be dereferenced.
func adapted(t reflect.Type) bool {
	return t == yamlNodeType || t == jsonResultType || t.Implements(recordType)
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() || adapted(rv.Type()) {
			return rv
		}

		rv = rv.Elem()
	}

	return rv
}

func isNil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}

	return false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
