package mapper

import (
	"fmt"
	"reflect"

	"objects-mixer/diagnostic"
	"objects-mixer/internal/common"
	"objects-mixer/internal/match"
	"objects-mixer/primitive"
	"objects-mixer/record"
)

// suggestionCount caps the names offered by MissingPropertyError.
const suggestionCount = 3

// projection holds the state of one projection call.
type projection struct {
	m     *Mapper
	diags *diagnostic.Diagnostics
}

func (p *projection) root(source any, dst any) error {
	if p.m.err != nil {
		return p.m.err
	}

	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %T is not a pointer", ErrNotAStruct, dst)
	}

	target := rv.Elem()

	t := target.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	shape, err := p.m.ShapeOf(t)
	if err != nil {
		return err
	}

	rec, err := record.Of(source)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}

	out := reflect.New(t)
	if err := p.structValue("", shape, rec, out.Elem()); err != nil {
		return err
	}

	if target.Kind() == reflect.Pointer {
		target.Set(out)
	} else {
		target.Set(out.Elem())
	}

	return nil
}

// value projects src onto dst, a settable value of type n.Type.
func (p *projection) value(path string, n *Node, src any, dst reflect.Value) error {
	if record.KindOf(src) == record.KindNull {
		dst.SetZero()
		return nil
	}

	switch n.Kind {
	case FieldInterface:
		return p.anyValue(path, n, src, dst)
	case FieldPointer:
		elem := reflect.New(n.Type.Elem())
		if err := p.value(path, n.Elem, src, elem.Elem()); err != nil {
			return err
		}

		dst.Set(elem)

		return nil
	case FieldIdentifier:
		return p.identifier(path, n, src, dst)
	case FieldStruct:
		if record.KindOf(src) != record.KindRecord {
			return p.scalar(path, n.Type, src, dst)
		}

		rec, err := record.Of(src)
		if err != nil {
			return p.mismatch(path, src, n.Type, err)
		}

		out := reflect.New(n.Type).Elem()
		if err := p.structValue(path, n.Shape, rec, out); err != nil {
			return err
		}

		dst.Set(out)

		return nil
	case FieldSlice:
		return p.sliceValue(path, n, src, dst)
	case FieldArray:
		return p.arrayValue(path, n, src, dst)
	case FieldMap:
		return p.mapValue(path, n, src, dst)
	}

	return p.scalar(path, n.Type, src, dst)
}

func (p *projection) structValue(path string, shape *Shape, rec record.Record, dst reflect.Value) error {
	names := rec.Names()
	used := make(map[string]struct{}, len(names))

	for _, f := range shape.Fields {
		fieldPath := common.JoinPath(path, f.Name)

		name, v, ok := p.lookup(rec, names, f)
		if !ok {
			if err := p.missing(fieldPath, f, names, dst); err != nil {
				return err
			}

			continue
		}

		used[name] = struct{}{}

		if err := p.value(fieldPath, f.Node, v, fieldAt(dst, f.Index)); err != nil {
			return err
		}
	}

	if p.diags != nil {
		for _, name := range names {
			if _, ok := used[name]; !ok {
				p.diags.AddInfo("MAP101", common.JoinPath(path, name), "source property not used by "+shape.Type.String())
			}
		}
	}

	return nil
}

func (p *projection) missing(path string, f Field, names []string, dst reflect.Value) error {
	switch {
	case f.Default != nil:
		if p.diags != nil {
			p.diags.AddInfo("MAP102", path, fmt.Sprintf("missing source property %q, default %q used", f.Key, *f.Default))
		}

		return p.value(path, f.Node, *f.Default, fieldAt(dst, f.Index))
	case f.Optional || p.m.lenient:
		if p.diags != nil {
			p.diags.AddInfo("MAP102", path, fmt.Sprintf("missing source property %q, zero value kept", f.Key))
		}

		return nil
	}

	suggestions := match.Suggest(f.Key, names, suggestionCount)
	if p.diags != nil {
		p.diags.AddError("MAP102", path, fmt.Sprintf("missing source property %q", f.Key), suggestions...)
	}

	return &MissingPropertyError{Name: path, Key: f.Key, Suggestions: suggestions}
}

func (p *projection) anyValue(path string, n *Node, src any, dst reflect.Value) error {
	v, err := record.Materialize(src)
	if err != nil {
		return p.mismatch(path, src, n.Type, err)
	}

	if v == nil {
		dst.SetZero()
		return nil
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(n.Type) {
		return p.mismatch(path, src, n.Type, nil)
	}

	dst.Set(rv)

	return nil
}

func (p *projection) sliceValue(path string, n *Node, src any, dst reflect.Value) error {
	items, ok := record.List(src)
	if !ok {
		return p.mismatch(path, src, n.Type, nil)
	}

	out := reflect.MakeSlice(n.Type, len(items), len(items))
	for i, item := range items {
		if err := p.value(common.IndexPath(path, i), n.Elem, item, out.Index(i)); err != nil {
			return err
		}
	}

	dst.Set(out)

	return nil
}

func (p *projection) arrayValue(path string, n *Node, src any, dst reflect.Value) error {
	items, ok := record.List(src)
	if !ok {
		return p.mismatch(path, src, n.Type, nil)
	}

	if len(items) > n.Type.Len() {
		if !p.m.categories.Has(primitive.CategoryUnsafeArray) {
			return p.mismatch(path, src, n.Type, fmt.Errorf("list of %d items does not fit", len(items)))
		}

		items = items[:n.Type.Len()]
	} else if !p.m.categories.Has(primitive.CategorySafeArray) && !p.m.categories.Has(primitive.CategoryUnsafeArray) {
		return p.mismatch(path, src, n.Type, fmt.Errorf("list to array conversion is not allowed"))
	}

	out := reflect.New(n.Type).Elem()
	for i, item := range items {
		if err := p.value(common.IndexPath(path, i), n.Elem, item, out.Index(i)); err != nil {
			return err
		}
	}

	dst.Set(out)

	return nil
}

func (p *projection) mapValue(path string, n *Node, src any, dst reflect.Value) error {
	rec, err := record.Of(src)
	if err != nil {
		return p.mismatch(path, src, n.Type, err)
	}

	names := rec.Names()
	out := reflect.MakeMapWithSize(n.Type, len(names))

	for _, name := range names {
		v, _ := rec.Get(name)

		elem := reflect.New(n.Type.Elem()).Elem()
		if err := p.value(common.JoinPath(path, name), n.Elem, v, elem); err != nil {
			return err
		}

		out.SetMapIndex(reflect.ValueOf(name).Convert(n.Type.Key()), elem)
	}

	dst.Set(out)

	return nil
}

func (p *projection) mismatch(path string, src any, to reflect.Type, err error) error {
	return &ConversionError{Path: path, From: reflect.TypeOf(src), To: to, Err: err}
}

// fieldAt returns the field at index, allocating nil embedded pointers on the way.
func fieldAt(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	return v
}
