package record

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Materialize deep copies v into the result model: records become *Map,
// lists become []any, pointers to scalars are dereferenced and null is nil.
// The returned value never aliases v.
func Materialize(v any) (any, error) {
	switch KindOf(v) {
	case KindNull:
		return nil, nil
	case KindRecord:
		r, err := Of(v)
		if err != nil {
			return nil, err
		}

		return materializeRecord(r)
	case KindList:
		items, _ := List(v)

		out := make([]any, len(items))
		for i, item := range items {
			m, err := Materialize(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			out[i] = m
		}

		return out, nil
	case KindUnknown:
		return nil, &ShapeError{Type: typeName(v)}
	}

	return scalarValue(v), nil
}

func materializeRecord(r Record) (*Map, error) {
	names := r.Names()
	out := NewMap(len(names))

	for _, name := range names {
		v, _ := r.Get(name)

		m, err := Materialize(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out.Set(name, m)
	}

	return out, nil
}

func scalarValue(v any) any {
	switch t := v.(type) {
	case gjson.Result:
		return jsonValue(t)
	case *yaml.Node:
		v, _ := yamlValue(t) // scalar nodes always convert
		return v
	case []byte:
		return bytes.Clone(t)
	}

	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)

		return out.Interface()
	}

	return rv.Interface()
}
