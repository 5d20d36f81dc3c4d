// Package mixer merges two records into one ordered record.
//
// Properties present on one side only are copied. Shared properties are
// resolved by the Policy priority: LeftPriority and RightPriority pick a
// side, ValueMerge prefers non-empty values, then formulas, then merges
// lists item by item and nested records recursively, and finally keeps the
// left value.
package mixer

import (
	"fmt"

	"objects-mixer/diagnostic"
	"objects-mixer/internal/common"
	"objects-mixer/record"
)

// Merge merges left and right with the default policy.
func Merge(left, right any) (*record.Map, error) {
	return NewPolicy().Merge(left, right)
}

// Merge merges left and right. Both must be records (see record.Of).
//
// The result holds left-only properties in left order, then right-only
// properties in right order, then shared properties in left order. Values
// are materialized: nothing in the result aliases left or right.
func (p Policy) Merge(left, right any) (*record.Map, error) {
	m := merger{policy: p}
	return m.mergeRoot(left, right)
}

// MergeReport merges like Merge and also returns the conflicts as warnings.
func (p Policy) MergeReport(left, right any) (*record.Map, diagnostic.Diagnostics, error) {
	m := merger{policy: p, diags: &diagnostic.Diagnostics{}}

	out, err := m.mergeRoot(left, right)
	if err != nil {
		return nil, *m.diags, err
	}

	return out, *m.diags, nil
}

// merger holds the state of one merge call.
type merger struct {
	policy Policy
	diags  *diagnostic.Diagnostics
}

func (m *merger) mergeRoot(left, right any) (*record.Map, error) {
	if err := m.policy.Err(); err != nil {
		return nil, err
	}

	l, err := record.Of(left)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}

	r, err := record.Of(right)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}

	return m.mergeRecords("", l, r)
}

func (m *merger) mergeRecords(path string, l, r record.Record) (*record.Map, error) {
	lProps := record.Properties(l)
	rProps := record.Properties(r)

	lNames := make(map[string]any, len(lProps))
	for _, p := range lProps {
		lNames[p.Name] = p.Value
	}

	rNames := make(map[string]any, len(rProps))
	for _, p := range rProps {
		rNames[p.Name] = p.Value
	}

	out := record.NewMap(len(lProps) + len(rProps))

	lOwner, rOwner := l.TypeName(), r.TypeName()

	for _, p := range lProps {
		if _, shared := rNames[p.Name]; shared || m.policy.Ignores(lOwner, p.Name) {
			continue
		}

		v, err := materialize(common.JoinPath(path, p.Name), p.Value)
		if err != nil {
			return nil, err
		}

		out.Set(p.Name, v)
	}

	for _, p := range rProps {
		if _, shared := lNames[p.Name]; shared || m.policy.Ignores(rOwner, p.Name) {
			continue
		}

		if _, exists := out.Get(p.Name); exists {
			continue
		}

		v, err := materialize(common.JoinPath(path, p.Name), p.Value)
		if err != nil {
			return nil, err
		}

		out.Set(p.Name, v)
	}

	// shared properties are never ignored
	for _, p := range lProps {
		right, shared := rNames[p.Name]
		if !shared {
			continue
		}

		v, err := m.resolve(common.JoinPath(path, p.Name), p.Value, right)
		if err != nil {
			return nil, err
		}

		out.Set(p.Name, v)
	}

	return out, nil
}

func (m *merger) conflict(c Conflict) {
	if m.diags != nil {
		m.diags.AddWarning(c.Kind.Code(), c.Path, c.String())
	}

	if m.policy.logger != nil {
		m.policy.logger.Warn("merge conflict, left value kept",
			"path", c.Path,
			"kind", c.Kind.String(),
			"left", record.Text(c.Left),
			"right", record.Text(c.Right),
		)
	}

	if m.policy.observer != nil {
		m.policy.observer(c)
	}
}

func materialize(path string, v any) (any, error) {
	out, err := record.Materialize(v)
	if err != nil {
		return nil, shapeAt(path, err)
	}

	return out, nil
}
