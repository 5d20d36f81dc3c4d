package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is an insertion ordered map of properties. It is the result type of a
// merge and implements Record. The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty map with room for n properties.
func NewMap(n int) *Map {
	return &Map{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set stores value under name. A new name is appended, an existing one keeps its position.
func (m *Map) Set(name string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}

	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}

	m.values[name] = value
}

// Get implements Record.
func (m *Map) Get(name string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[name]

	return v, ok
}

// Delete removes name and reports whether it was present.
func (m *Map) Delete(name string) bool {
	if m == nil {
		return false
	}

	if _, ok := m.values[name]; !ok {
		return false
	}

	delete(m.values, name)

	for i, key := range m.keys {
		if key == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}

	return true
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Names implements Record. The returned slice is a copy.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.keys...)
}

// TypeName implements Record; maps are untyped.
func (m *Map) TypeName() string {
	return ""
}

// Values returns the values in insertion order.
func (m *Map) Values() []any {
	out := make([]any, 0, m.Len())
	for _, key := range m.Names() {
		out = append(out, m.values[key])
	}

	return out
}

// Range calls fn for each property in order until fn returns false.
func (m *Map) Range(fn func(name string, value any) bool) {
	for _, key := range m.Names() {
		if !fn(key, m.values[key]) {
			return
		}
	}
}

// Clone returns a deep copy. Nested maps and lists are copied, scalars are shared.
func (m *Map) Clone() *Map {
	out := NewMap(m.Len())
	m.Range(func(name string, value any) bool {
		out.Set(name, cloneValue(value))
		return true
	})

	return out
}

// ToMap converts m into nested plain Go maps and slices. Order is lost.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(name string, value any) bool {
		out[name] = plainValue(value)
		return true
	})

	return out
}

// MarshalJSON writes the properties in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range m.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the content of m with a JSON object, keeping document order.
func (m *Map) UnmarshalJSON(data []byte) error {
	r, err := FromJSON(data)
	if err != nil {
		return err
	}

	v, err := materializeRecord(r)
	if err != nil {
		return err
	}

	*m = *v

	return nil
}

// MarshalYAML builds a mapping node in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, key := range m.Names() {
		var value yaml.Node
		if err := value.Encode(m.values[key]); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		)
	}

	return node, nil
}

// UnmarshalYAML replaces the content of m with a YAML mapping, keeping document order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	r, err := newYAMLRecord(node)
	if err != nil {
		return err
	}

	v, err := materializeRecord(r)
	if err != nil {
		return err
	}

	*m = *v

	return nil
}

func (m *Map) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("record.Map(%d)", m.Len())
	}

	return string(b)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}

		return out
	}

	return v
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}

		return out
	}

	return v
}
