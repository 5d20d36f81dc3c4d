package record

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a YAML mapping into a Record. Properties keep document order.
func FromYAML(data []byte) (Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	r, err := newYAMLRecord(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return r, nil
}

type yamlRecord struct {
	names  []string
	values map[string]any
}

func newYAMLRecord(n *yaml.Node) (*yamlRecord, error) {
	n = resolveNode(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, &ShapeError{Type: "yaml " + nodeKindName(n), Want: KindRecord}
	}

	explicit := map[string]bool{}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveNode(n.Content[i])
		if key == nil || key.Kind != yaml.ScalarNode {
			return nil, &ShapeError{Type: "yaml " + nodeKindName(key) + " key", Want: KindScalar}
		}

		if key.Tag != "!!merge" {
			explicit[key.Value] = true
		}
	}

	r := &yamlRecord{values: map[string]any{}}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveNode(n.Content[i])

		if key.Tag == "!!merge" {
			if err := r.merge(n.Content[i+1], explicit); err != nil {
				return nil, err
			}

			continue
		}

		v, err := yamlValue(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.Value, err)
		}

		r.set(key.Value, v)
	}

	return r, nil
}

// merge adds the pairs of a << value, a mapping or a sequence of mappings.
// Explicit keys and earlier mappings take precedence.
func (r *yamlRecord) merge(n *yaml.Node, explicit map[string]bool) error {
	n = resolveNode(n)

	sources := []*yaml.Node{n}
	if n != nil && n.Kind == yaml.SequenceNode {
		sources = n.Content
	}

	for _, src := range sources {
		from, err := newYAMLRecord(src)
		if err != nil {
			return fmt.Errorf("merge key: %w", err)
		}

		for _, name := range from.names {
			if _, seen := r.values[name]; seen || explicit[name] {
				continue
			}

			r.set(name, from.values[name])
		}
	}

	return nil
}

func (r *yamlRecord) set(name string, v any) {
	if _, dup := r.values[name]; !dup {
		r.names = append(r.names, name)
	}

	r.values[name] = v
}

func (r *yamlRecord) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *yamlRecord) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *yamlRecord) TypeName() string {
	return ""
}

// resolveNode unwraps documents and aliases.
func resolveNode(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}

	return nil
}

// yamlValue converts a YAML node into the record model.
func yamlValue(n *yaml.Node) (any, error) {
	n = resolveNode(n)
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		r, err := newYAMLRecord(n)
		if err != nil {
			return nil, err
		}

		return r, nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, item := range n.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			out[i] = v
		}

		return out, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}

		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value, nil
		}

		return v, nil
	}

	return nil, nil
}

func yamlKind(n *yaml.Node) Kind {
	n = resolveNode(n)
	if n == nil {
		return KindNull
	}

	switch n.Kind {
	case yaml.MappingNode:
		return KindRecord
	case yaml.SequenceNode:
		return KindList
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return KindNull
		}

		return scalarKind(n.Value)
	}

	return KindUnknown
}

func nodeKindName(n *yaml.Node) string {
	if n == nil {
		return "empty document"
	}

	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}

	return "node"
}
