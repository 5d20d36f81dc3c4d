// Package formula evaluates the spreadsheet-like formulas kept in record
// properties, such as ROUNDUP(({Qty}*(1+{MAT})),0).
//
// A placeholder {Name} refers to another property of the same record.
// Empty values count as 0, numeric text as its number, and placeholders
// naming formulas are evaluated first.
package formula

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"objects-mixer/record"
)

var (
	ErrFormulaCycle       = errors.New("formula cycle")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrInvalidFormula     = errors.New("invalid formula")
	ErrNotANumber         = errors.New("not a number")
)

var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Placeholders lists the placeholder names of text in order of first appearance.
func Placeholders(text string) []string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)

	for _, m := range record.PlaceholderPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}

		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}

	return out
}

// Formula is a compiled formula. It is safe for concurrent use.
type Formula struct {
	text    string
	names   []string          // placeholders, in order of appearance
	idents  map[string]string // placeholder -> expression identifier
	program *vm.Program
}

// Compile rewrites the placeholders of text into identifiers and compiles
// the resulting expression.
func Compile(text string) (*Formula, error) {
	taken := map[string]struct{}{}
	for _, id := range identifierPattern.FindAllString(record.PlaceholderPattern.ReplaceAllString(text, " "), -1) {
		taken[id] = struct{}{}
	}

	f := &Formula{text: text, idents: map[string]string{}}
	ids := newStem("p", taken)

	source := record.PlaceholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]

		id, ok := f.idents[name]
		if !ok {
			id = ids.Next()
			f.idents[name] = id
			f.names = append(f.names, name)
		}

		return id
	})

	program, err := expr.Compile(source, functions...)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidFormula, text, err)
	}

	f.program = program

	return f, nil
}

func (f *Formula) String() string { return f.text }

// Placeholders lists the placeholder names of the formula.
func (f *Formula) Placeholders() []string {
	return append([]string(nil), f.names...)
}

// Eval evaluates the formula with placeholder values taken from env.
func (f *Formula) Eval(env map[string]any) (any, error) {
	vars := make(map[string]any, len(f.names))

	for _, name := range f.names {
		v, ok := env[name]
		if !ok {
			return nil, fmt.Errorf("%w {%s} in %q", ErrUnknownPlaceholder, name, f.text)
		}

		operand, err := Operand(v)
		if err != nil {
			return nil, fmt.Errorf("{%s}: %w", name, err)
		}

		vars[f.idents[name]] = operand
	}

	out, err := expr.Run(f.program, vars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.text, err)
	}

	return out, nil
}

// Operand converts a property value into a formula operand: empty values
// are 0, numeric text and numbers are float64, booleans stay booleans.
func Operand(v any) (any, error) {
	if record.IsEmpty(v) {
		return 0.0, nil
	}

	if b, ok := v.(bool); ok {
		return b, nil
	}

	x, err := toFloat(v)
	if err != nil {
		return nil, err
	}

	return x, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, nil
	case rv.CanFloat():
		return rv.Float(), nil
	case rv.CanInt():
		return float64(rv.Int()), nil
	case rv.CanUint():
		return float64(rv.Uint()), nil
	}

	if record.KindOf(v) != record.KindScalar {
		return 0, fmt.Errorf("%w: %s", ErrNotANumber, record.KindOf(v))
	}

	text := strings.TrimSpace(record.Text(v))

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}

	return x, nil
}
