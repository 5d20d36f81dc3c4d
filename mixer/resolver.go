package mixer

import (
	"objects-mixer/internal/common"
	"objects-mixer/record"
)

// resolve decides the value of a property present on both sides.
func (m *merger) resolve(path string, left, right any) (any, error) {
	switch m.policy.priority {
	case LeftPriority:
		return materialize(path, left)
	case RightPriority:
		return materialize(path, right)
	}

	leftEmpty, rightEmpty := record.IsEmpty(left), record.IsEmpty(right)

	switch {
	case leftEmpty && rightEmpty:
		return materialize(path, left)
	case leftEmpty:
		return materialize(path, right)
	case rightEmpty:
		return materialize(path, left)
	}

	lk, rk := record.KindOf(left), record.KindOf(right)

	switch {
	case lk == record.KindFormula:
		return materialize(path, left)
	case rk == record.KindFormula:
		return materialize(path, right)
	case lk == record.KindList && rk == record.KindList:
		return m.zip(path, left, right)
	case lk == record.KindRecord && rk == record.KindRecord:
		return m.nested(path, left, right)
	case lk != rk:
		m.conflict(Conflict{Path: path, Kind: ShapeConflict, Left: left, Right: right})
	case lk == record.KindScalar && record.Text(left) != record.Text(right):
		m.conflict(Conflict{Path: path, Kind: ScalarConflict, Left: left, Right: right})
	}

	return materialize(path, left)
}

func (m *merger) nested(path string, left, right any) (any, error) {
	l, err := record.Of(left)
	if err != nil {
		return nil, shapeAt(path, err)
	}

	r, err := record.Of(right)
	if err != nil {
		return nil, shapeAt(path, err)
	}

	return m.mergeRecords(path, l, r)
}

// zip merges two lists of records item by item.
func (m *merger) zip(path string, left, right any) (any, error) {
	lItems, _ := record.List(left)
	rItems, _ := record.List(right)

	n := len(lItems)
	if len(rItems) != n {
		if !m.policy.truncate {
			return nil, &ListLengthError{Name: path, Left: len(lItems), Right: len(rItems)}
		}

		n = min(n, len(rItems))
	}

	out := make([]any, n)

	for i := range n {
		itemPath := common.IndexPath(path, i)

		l, err := record.Of(lItems[i])
		if err != nil {
			return nil, shapeAt(itemPath, err)
		}

		r, err := record.Of(rItems[i])
		if err != nil {
			return nil, shapeAt(itemPath, err)
		}

		merged, err := m.mergeRecords(itemPath, l, r)
		if err != nil {
			return nil, err
		}

		out[i] = merged
	}

	return out, nil
}
