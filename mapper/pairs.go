package mapper

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"objects-mixer/record"
)

// Pairs returns the properties of the struct v keyed by their source keys,
// so a field tagged mix:"Property One" is listed as "Property One".
// Scalars become their text and null values "". Nested structs and maps
// become nested records, slices and arrays lists.
func Pairs(v any, opts ...Option) (*record.Map, error) {
	return mapperFor(opts).Pairs(v)
}

// Pairs is the inverse of Project: projecting the result back onto the
// type of v gives an equal value for text round-tripping fields.
func (m *Mapper) Pairs(v any) (*record.Map, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrNotAStruct, v)
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: %T", ErrNotAStruct, v)
	}

	shape, err := m.ShapeOf(rv.Type())
	if err != nil {
		return nil, err
	}

	return pairsOf(shape, rv), nil
}

func pairsOf(s *Shape, rv reflect.Value) *record.Map {
	out := record.NewMap(len(s.Fields))

	for _, f := range s.Fields {
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			out.Set(f.Key, "")
			continue
		}

		out.Set(f.Key, pairValue(f.Node, fv))
	}

	return out
}

func pairValue(n *Node, v reflect.Value) any {
	switch n.Kind {
	case FieldPointer:
		if v.IsNil() {
			return ""
		}

		return pairValue(n.Elem, v.Elem())
	case FieldStruct:
		return pairsOf(n.Shape, v)
	case FieldSlice, FieldArray:
		if n.Kind == FieldSlice && v.IsNil() {
			return ""
		}

		items := make([]any, v.Len())
		for i := range items {
			items[i] = pairValue(n.Elem, v.Index(i))
		}

		return items
	case FieldMap:
		if v.IsNil() {
			return ""
		}

		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })

		out := record.NewMap(len(keys))
		for _, k := range keys {
			out.Set(k.String(), pairValue(n.Elem, v.MapIndex(k)))
		}

		return out
	case FieldInterface:
		if v.IsNil() {
			return ""
		}

		return interfacePair(v.Elem().Interface())
	}

	return record.Text(v.Interface())
}

// interfacePair renders a dynamic value: records and lists are copied,
// scalars become text.
func interfacePair(v any) any {
	switch record.KindOf(v) {
	case record.KindRecord, record.KindList:
		if out, err := record.Materialize(v); err == nil {
			return out
		}
	}

	return record.Text(v)
}
