package mixer

import (
	"fmt"
	"log/slog"
	"strings"

	"objects-mixer/internal/common"
)

// Priority selects how shared properties are resolved.
type Priority int

const (
	// ValueMerge inspects emptiness, formulas and structure of both values.
	ValueMerge Priority = iota
	// LeftPriority always takes the left value.
	LeftPriority
	// RightPriority always takes the right value.
	RightPriority
)

var priorityNames = map[Priority]string{
	ValueMerge:    "merge",
	LeftPriority:  "left",
	RightPriority: "right",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}

	return common.UnknownStr
}

// ParsePriority is the inverse of Priority.String.
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown priority %q, want one of merge, left, right", s)
}

// AnyOwner matches properties of every owner type in an ignore declaration.
const AnyOwner = "*"

type ignoreKey struct {
	owner, name string
}

// Policy configures a merge. The zero value merges by value with strict
// list lengths and no ignored properties.
//
// Policy is immutable: every builder method returns a modified copy, so a
// policy can be shared between goroutines and reused across merges. A
// builder error is kept and returned by Err and by every merge made with
// the policy.
type Policy struct {
	priority Priority
	ignore   map[ignoreKey]struct{}
	truncate bool
	logger   *slog.Logger
	observer func(Conflict)
	err      error
}

// NewPolicy returns the default policy.
func NewPolicy() Policy {
	return Policy{}
}

func (p Policy) WithPriority(priority Priority) Policy {
	p.priority = priority
	return p
}

func (p Policy) WithValueMerge() Policy    { return p.WithPriority(ValueMerge) }
func (p Policy) WithLeftPriority() Policy  { return p.WithPriority(LeftPriority) }
func (p Policy) WithRightPriority() Policy { return p.WithPriority(RightPriority) }

func (p Policy) Priority() Priority {
	return p.priority
}

// Ignoring drops the property name of records whose type name is owner.
// Untyped records (maps, JSON and YAML documents) have the empty owner
// name, AnyOwner matches records of every type.
func (p Policy) Ignoring(owner, name string) Policy {
	if name == "" {
		return p.fail(fmt.Errorf("%w: empty property name for owner %q", ErrAmbiguousIgnoreExpression, owner))
	}

	key := ignoreKey{owner: owner, name: name}

	ignore := make(map[ignoreKey]struct{}, len(p.ignore)+1)
	for k := range p.ignore {
		ignore[k] = struct{}{}
	}

	ignore[key] = struct{}{}
	p.ignore = ignore

	return p
}

// TruncatingLists zips shared lists of different lengths up to the shorter
// one instead of failing with ErrListLengthMismatch.
func (p Policy) TruncatingLists() Policy {
	p.truncate = true
	return p
}

// StrictLists restores the default list length check.
func (p Policy) StrictLists() Policy {
	p.truncate = false
	return p
}

// WithLogger logs every conflict kept in favor of the left value at warn level.
func (p Policy) WithLogger(logger *slog.Logger) Policy {
	p.logger = logger
	return p
}

// OnConflict registers fn to observe conflicts. It is called synchronously
// during the merge.
func (p Policy) OnConflict(fn func(Conflict)) Policy {
	p.observer = fn
	return p
}

// Err returns the first error met while building the policy.
func (p Policy) Err() error {
	return p.err
}

// Ignores reports whether the property name of an owner type is ignored.
func (p Policy) Ignores(owner, name string) bool {
	if len(p.ignore) == 0 {
		return false
	}

	if _, ok := p.ignore[ignoreKey{owner: owner, name: name}]; ok {
		return true
	}

	_, ok := p.ignore[ignoreKey{owner: AnyOwner, name: name}]

	return ok
}

// IgnoredCount returns the number of ignore declarations.
func (p Policy) IgnoredCount() int {
	return len(p.ignore)
}

func (p Policy) fail(err error) Policy {
	if p.err == nil {
		p.err = err
	}

	return p
}
