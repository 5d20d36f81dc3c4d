package formula

import (
	"fmt"
	"strings"

	"objects-mixer/record"
)

// Option configures Evaluate and EvaluateAll.
type Option func(*evaluator)

// WithVariables supplies values for placeholders the record does not have.
// Record properties take precedence.
func WithVariables(vars map[string]any) Option {
	return func(e *evaluator) {
		for name, v := range vars {
			e.vars[name] = v
		}
	}
}

// Evaluate returns the value of property name of rec, evaluating it when
// it holds a formula. Other values are returned materialized.
func Evaluate(rec record.Record, name string, opts ...Option) (any, error) {
	e := newEvaluator(rec, opts)
	return e.eval(name)
}

// EvaluateAll returns a copy of rec where every formula property is
// replaced by its value. Nested records are evaluated on their own.
func EvaluateAll(rec record.Record, opts ...Option) (*record.Map, error) {
	out := record.NewMap(len(rec.Names()))
	e := newEvaluator(rec, opts)

	for _, name := range rec.Names() {
		v, _ := rec.Get(name)

		var err error

		switch record.KindOf(v) {
		case record.KindFormula:
			v, err = e.eval(name)
		case record.KindRecord:
			v, err = evaluateNested(v, opts)
		case record.KindList:
			v, err = evaluateList(v, opts)
		default:
			v, err = record.Materialize(v)
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out.Set(name, v)
	}

	return out, nil
}

func evaluateNested(v any, opts []Option) (any, error) {
	nested, err := record.Of(v)
	if err != nil {
		return nil, err
	}

	return EvaluateAll(nested, opts...)
}

func evaluateList(v any, opts []Option) (any, error) {
	items, _ := record.List(v)
	out := make([]any, len(items))

	for i, item := range items {
		var err error

		switch record.KindOf(item) {
		case record.KindRecord:
			out[i], err = evaluateNested(item, opts)
		case record.KindList:
			out[i], err = evaluateList(item, opts)
		default:
			out[i], err = record.Materialize(item)
		}

		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
	}

	return out, nil
}

type evaluator struct {
	rec   record.Record
	vars  map[string]any
	done  map[string]any
	stack []string
}

func newEvaluator(rec record.Record, opts []Option) *evaluator {
	e := &evaluator{
		rec:  rec,
		vars: map[string]any{},
		done: map[string]any{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *evaluator) eval(name string) (any, error) {
	if v, ok := e.done[name]; ok {
		return v, nil
	}

	for i, visiting := range e.stack {
		if visiting == name {
			chain := append(append([]string(nil), e.stack[i:]...), name)
			return nil, fmt.Errorf("%w: %s", ErrFormulaCycle, strings.Join(chain, " -> "))
		}
	}

	v, ok := e.rec.Get(name)
	if !ok {
		if v, ok = e.vars[name]; !ok {
			return nil, fmt.Errorf("%w {%s}", ErrUnknownPlaceholder, name)
		}
	}

	if !record.IsFormula(v) {
		out, err := record.Materialize(v)
		if err != nil {
			return nil, err
		}

		e.done[name] = out

		return out, nil
	}

	f, err := Compile(record.Text(v))
	if err != nil {
		return nil, err
	}

	e.stack = append(e.stack, name)

	env := make(map[string]any, len(f.names))
	for _, ph := range f.names {
		if env[ph], err = e.eval(ph); err != nil {
			return nil, err
		}
	}

	e.stack = e.stack[:len(e.stack)-1]

	out, err := f.Eval(env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	e.done[name] = out

	return out, nil
}
