// Package mapper projects untyped records onto typed Go values.
//
// Destination structs are described by a Shape compiled once per type and
// cached by the Mapper. Each field is looked up in the source record by its
// alias or name, case-insensitively, and its value is rebuilt: scalars are
// converted, nested records become structs or maps, lists become slices or
// arrays. Identifier fields (uuid.UUID) never fail, unparsable text gives
// uuid.Nil. Null values give zero values.
package mapper

import (
	"fmt"
	"reflect"
	"sync"

	"objects-mixer/diagnostic"
	"objects-mixer/primitive"
	"objects-mixer/record"
)

// Mapper projects records onto destination types. It is safe for concurrent use.
type Mapper struct {
	aliases    AliasFunc
	categories primitive.CategoryEnum
	casters    map[CasterPair]Caster
	normalized bool
	lenient    bool
	err        error

	shapes sync.Map // reflect.Type -> *Shape
}

var defaultMapper = New()

// New returns a Mapper configured by opts.
func New(opts ...Option) *Mapper {
	m := &Mapper{categories: DefaultCategories}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func mapperFor(opts []Option) *Mapper {
	if len(opts) == 0 {
		return defaultMapper
	}

	return New(opts...)
}

// Into projects source onto a new T. T is a struct or a pointer to a struct.
func Into[T any](source any, opts ...Option) (T, error) {
	var out T
	if err := mapperFor(opts).Project(source, &out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

// IntoList projects a list of records, or the values of a record in
// record order, onto a new []T.
func IntoList[T any](source any, opts ...Option) ([]T, error) {
	var out []T
	if err := mapperFor(opts).ProjectList(source, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Project projects source onto dst, a pointer to a struct or a pointer to a
// pointer to a struct. dst is only written when the projection succeeds.
func (m *Mapper) Project(source any, dst any) error {
	p := projection{m: m}
	return p.root(source, dst)
}

// ProjectReport projects like Project and also returns the substitutions
// made on the way: unused source properties and missing fields.
func (m *Mapper) ProjectReport(source any, dst any) (diagnostic.Diagnostics, error) {
	p := projection{m: m, diags: &diagnostic.Diagnostics{}}
	err := p.root(source, dst)

	return *p.diags, err
}

// ProjectList projects a list of records onto dst, a pointer to a slice.
func (m *Mapper) ProjectList(source any, dst any) error {
	if m.err != nil {
		return m.err
	}

	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%w: %T is not a pointer to a slice", ErrNotAStruct, dst)
	}

	node, err := m.compile(rv.Elem().Type())
	if err != nil {
		return err
	}

	items, ok := record.List(source)
	if !ok {
		rec, err := record.Of(source)
		if err != nil {
			return &ConversionError{From: reflect.TypeOf(source), To: node.Type, Err: err}
		}

		items = make([]any, 0, len(rec.Names()))
		for _, prop := range record.Properties(rec) {
			items = append(items, prop.Value)
		}
	}

	out := reflect.New(node.Type).Elem()

	p := projection{m: m}
	if err := p.value("", node, items, out); err != nil {
		return err
	}

	rv.Elem().Set(out)

	return nil
}
