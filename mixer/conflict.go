package mixer

import (
	"fmt"

	"objects-mixer/internal/common"
	"objects-mixer/record"
)

// ConflictKind tells how the two sides of a shared property disagreed.
type ConflictKind int

const (
	// ScalarConflict: both values are non-empty plain scalars with different text.
	ScalarConflict ConflictKind = iota + 1
	// ShapeConflict: one side is a list or a record, the other is not the same shape.
	ShapeConflict
)

func (k ConflictKind) String() string {
	switch k {
	case ScalarConflict:
		return "scalar"
	case ShapeConflict:
		return "shape"
	default:
		return common.UnknownStr
	}
}

// Code is the diagnostic code MergeReport uses for the conflict kind.
func (k ConflictKind) Code() string {
	switch k {
	case ScalarConflict:
		return "MIX001"
	case ShapeConflict:
		return "MIX002"
	default:
		return ""
	}
}

// Conflict is a shared property where ValueMerge kept the left value
// although the right one was present and different.
type Conflict struct {
	Path  string
	Kind  ConflictKind
	Left  any
	Right any
}

func (c Conflict) String() string {
	switch c.Kind {
	case ScalarConflict:
		return fmt.Sprintf("%s: left %q kept over right %q", c.Path, record.Text(c.Left), record.Text(c.Right))
	default:
		return fmt.Sprintf("%s: left %s kept over right %s",
			c.Path, record.KindOf(c.Left), record.KindOf(c.Right))
	}
}
