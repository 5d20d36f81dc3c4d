package mapper

import (
	"fmt"
	"reflect"
	"strings"

	"objects-mixer/record"
)

// Shape describes how a destination struct is rebuilt from a record.
type Shape struct {
	Type   reflect.Type
	Fields []Field
}

// Field is a destination struct field and the source key it is read from.
type Field struct {
	Name     string // Go field name
	Key      string // source key: alias or Name
	Index    []int
	Optional bool
	Default  *string // default text used when the source key is missing
	Node     *Node
}

// Node describes a destination type. Elem is set for pointers, slices,
// arrays and maps, Shape for structs.
type Node struct {
	Type  reflect.Type
	Kind  FieldKind
	Elem  *Node
	Shape *Shape
}

// Field returns the field with the Go name, if any.
func (s *Shape) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Keys lists the source keys in field order.
func (s *Shape) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}

	return keys
}

// ShapeOf returns the shape of struct type t, compiling and caching it on
// first use. Recursive types share their shapes.
func (m *Mapper) ShapeOf(t reflect.Type) (*Shape, error) {
	if m.err != nil {
		return nil, m.err
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotAStruct, t)
	}

	if cached, ok := m.shapes.Load(t); ok {
		return cached.(*Shape), nil
	}

	node, err := m.compile(t)
	if err != nil {
		return nil, err
	}

	if node.Shape == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAStruct, t)
	}

	return node.Shape, nil
}

// compiler builds the node graph of one destination type. Struct shapes
// are created empty when first referenced and filled by the dealer loop,
// so recursive references end on the placeholder.
type compiler struct {
	m      *Mapper
	dealer Dealer
	shapes map[reflect.Type]*Shape
	nodes  map[reflect.Type]*Node
}

func (m *Mapper) compile(t reflect.Type) (*Node, error) {
	c := compiler{
		m:      m,
		shapes: make(map[reflect.Type]*Shape),
		nodes:  make(map[reflect.Type]*Node),
	}

	root, err := c.node(t)
	if err != nil {
		return nil, err
	}

	for st, ok := c.dealer.Next(); ok; st, ok = c.dealer.Next() {
		if err := c.fill(c.shapes[st]); err != nil {
			return nil, err
		}
	}

	for st, s := range c.shapes {
		m.shapes.LoadOrStore(st, s)
	}

	return root, nil
}

func (c *compiler) node(t reflect.Type) (*Node, error) {
	if n, ok := c.nodes[t]; ok {
		return n, nil
	}

	kind, err := Dispatch(t)
	if err != nil {
		return nil, err
	}

	n := &Node{Type: t, Kind: kind}
	c.nodes[t] = n

	switch kind {
	case FieldPointer, FieldSlice, FieldArray, FieldMap:
		if n.Elem, err = c.node(t.Elem()); err != nil {
			return nil, err
		}
	case FieldStruct:
		n.Shape = c.shape(t)
	}

	return n, nil
}

func (c *compiler) shape(t reflect.Type) *Shape {
	if cached, ok := c.m.shapes.Load(t); ok {
		return cached.(*Shape)
	}

	if s, ok := c.shapes[t]; ok {
		return s
	}

	s := &Shape{Type: t}
	c.shapes[t] = s
	c.dealer.Needs(t)

	return s
}

func (c *compiler) fill(s *Shape) error {
	for _, sf := range record.StructFields(s.Type) {
		if behindHiddenPointer(s.Type, sf.Index) {
			continue
		}

		field := s.Type.FieldByIndex(sf.Index)

		f, err := c.m.field(field)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", s.Type, field.Name, err)
		}

		f.Index = sf.Index

		if f.Node, err = c.node(field.Type); err != nil {
			return fmt.Errorf("%s.%s: %w", s.Type, field.Name, err)
		}

		s.Fields = append(s.Fields, f)
	}

	return nil
}

// behindHiddenPointer reports whether a promoted field is reached through
// an unexported embedded pointer, which cannot be allocated.
func behindHiddenPointer(t reflect.Type, index []int) bool {
	for i := 1; i < len(index); i++ {
		parent := t.FieldByIndex(index[:i])
		if !parent.IsExported() && parent.Type.Kind() == reflect.Pointer {
			return true
		}
	}

	return false
}

// field reads the key and options of a struct field.
func (m *Mapper) field(sf reflect.StructField) (Field, error) {
	name, optional, def, err := parseTag(sf.Tag.Get("mix"))
	if err != nil {
		return Field{}, err
	}

	f := Field{Name: sf.Name, Key: sf.Name, Optional: optional, Default: def}

	if alias, ok := m.alias(sf, name); ok {
		f.Key = alias
	}

	return f, nil
}

func (m *Mapper) alias(sf reflect.StructField, tagName string) (string, bool) {
	if m.aliases != nil {
		if alias, ok := m.aliases(sf); ok && alias != "" {
			return alias, true
		}
	}

	if tagName != "" {
		return tagName, true
	}

	if jsonName, _, _ := strings.Cut(sf.Tag.Get("json"), ","); jsonName != "" && jsonName != "-" {
		return jsonName, true
	}

	return "", false
}

// parseTag splits mix:"Name,optional,default=text". The default option
// takes the rest of the tag, commas included.
func parseTag(tag string) (name string, optional bool, def *string, err error) {
	name, rest, _ := strings.Cut(tag, ",")

	for rest != "" {
		if text, ok := strings.CutPrefix(rest, "default="); ok {
			def = &text
			break
		}

		var opt string
		opt, rest, _ = strings.Cut(rest, ",")

		switch opt {
		case "optional":
			optional = true
		case "":
		default:
			return "", false, nil, fmt.Errorf("%w: unknown option %q", ErrInvalidTag, opt)
		}
	}

	return name, optional, def, nil
}
