package mapper

import (
	"encoding"
	"errors"
	"reflect"

	"github.com/google/uuid"

	"objects-mixer/primitive"
	"objects-mixer/record"
)

var stringType = reflect.TypeFor[string]()

// basicTypes are the predeclared types named types are converted through.
var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.String:  stringType,
}

// identifier sets a uuid.UUID field. Text that does not parse gives uuid.Nil.
func (p *projection) identifier(path string, n *Node, src any, dst reflect.Value) error {
	switch record.KindOf(src) {
	case record.KindList, record.KindRecord, record.KindUnknown:
		return p.mismatch(path, src, n.Type, nil)
	}

	v, err := record.Materialize(src)
	if err != nil {
		return p.mismatch(path, src, n.Type, err)
	}

	rv := reflect.ValueOf(v)
	if ok, err := p.cast(rv, src, n.Type, dst); ok || err != nil {
		if err != nil {
			return p.mismatch(path, src, n.Type, err)
		}

		return nil
	}

	if id, ok := v.(uuid.UUID); ok {
		dst.Set(reflect.ValueOf(id))
		return nil
	}

	dst.Set(reflect.ValueOf(primitive.ParseIdentifier(record.Text(v))))

	return nil
}

// scalar converts a scalar source into dst. It tries in order: casters,
// plain assignment, category conversions, conversions between types of the
// same underlying kind, conversions through the underlying predeclared type
// and encoding.TextUnmarshaler.
func (p *projection) scalar(path string, t reflect.Type, src any, dst reflect.Value) error {
	switch record.KindOf(src) {
	case record.KindList, record.KindRecord, record.KindUnknown:
		return p.mismatch(path, src, t, nil)
	}

	v, err := record.Materialize(src)
	if err != nil {
		return p.mismatch(path, src, t, err)
	}

	rv := reflect.ValueOf(v)

	if ok, err := p.cast(rv, src, t, dst); ok || err != nil {
		if err != nil {
			return p.mismatch(path, src, t, err)
		}

		return nil
	}

	if rv.Type().AssignableTo(t) {
		dst.Set(rv)
		return nil
	}

	out, convErr := primitive.Convert(rv, t, p.m.categories)
	if convErr == nil {
		dst.Set(out)
		return nil
	}

	if !errors.Is(convErr, primitive.ErrNotAllowed) {
		return p.mismatch(path, src, t, convErr)
	}

	if sameUnderlying(rv.Type(), t) {
		dst.Set(rv.Convert(t))
		return nil
	}

	if base, ok := basicTypes[t.Kind()]; ok && base != t {
		out, err := primitive.Convert(rv, base, p.m.categories)
		switch {
		case err == nil:
			out = out.Convert(t)
			if v, ok := out.Interface().(interface{ IsValid() bool }); ok && !v.IsValid() {
				return p.mismatch(path, src, t, primitive.ErrInvalidEnum)
			}

			dst.Set(out)

			return nil
		case !errors.Is(err, primitive.ErrNotAllowed):
			return p.mismatch(path, src, t, err)
		}
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		nv := reflect.New(t)
		if err := nv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(record.Text(v))); err != nil {
			return p.mismatch(path, src, t, err)
		}

		dst.Set(nv.Elem())

		return nil
	}

	return p.mismatch(path, src, t, convErr)
}

// cast runs the caster registered for the source type, or for string when
// the source is textual and no exact caster exists. The bool result is true
// when dst was set.
func (p *projection) cast(rv reflect.Value, src any, t reflect.Type, dst reflect.Value) (bool, error) {
	if len(p.m.casters) == 0 {
		return false, nil
	}

	c, ok := p.m.casters[CasterPair{Src: rv.Type(), Dst: t}]
	if !ok {
		if c, ok = p.m.casters[CasterPair{Src: stringType, Dst: t}]; !ok {
			return false, nil
		}

		rv = reflect.ValueOf(record.Text(src))
	}

	out, ok, err := c.call(rv)
	if err != nil || !ok {
		return false, err
	}

	dst.Set(out)

	return true, nil
}

// sameUnderlying reports whether a and b share a basic underlying kind,
// or are string and byte slice.
func sameUnderlying(a, b reflect.Type) bool {
	if !a.ConvertibleTo(b) {
		return false
	}

	switch a.Kind() {
	case reflect.Struct, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Array:
		return false
	case reflect.Slice:
		return a.Elem().Kind() == reflect.Uint8 && b.Kind() == reflect.Slice
	}

	if a.Kind() == b.Kind() {
		return true
	}

	return a.Kind() == reflect.String && b.Kind() == reflect.Slice && b.Elem().Kind() == reflect.Uint8
}
