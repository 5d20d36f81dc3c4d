package formula_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objects-mixer/formula"
	"objects-mixer/record"
)

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"5", nil},
		{"{Qty}", []string{"Qty"}},
		{"ROUNDUP(({Qty}*(1+{MAT})),0)", []string{"Qty", "MAT"}},
		{"{Area of Wall} - {Openings} + {Area of Wall}", []string{"Area of Wall", "Openings"}},
		{"{}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formula.Placeholders(tt.text))
		})
	}
}

func TestFormulaEval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		env  map[string]any
		want any
	}{
		{"{Qty}*2", map[string]any{"Qty": "5"}, 10.0},
		{"ROUNDUP(({Qty}*(1+{MAT})),0)", map[string]any{"Qty": 5, "MAT": "0.1"}, 6.0},
		{"ROUNDUP({x}, 1)", map[string]any{"x": 1.11}, 1.2},
		{"ROUNDUP({x}, 2)", map[string]any{"x": 1.1}, 1.1},
		{"ROUNDUP({x})", map[string]any{"x": -1.2}, -2.0},
		{"ROUNDDOWN({x}, 0)", map[string]any{"x": -1.7}, -1.0},
		{"ROUND({x}, 1)", map[string]any{"x": 2.25}, 2.3},
		{"ROUND({x}, -2)", map[string]any{"x": 1250}, 1300.0},
		{"MIN({a}, {b}, 3)", map[string]any{"a": 7, "b": "2"}, 2.0},
		{"MAX({a}, {b})", map[string]any{"a": 7, "b": ""}, 7.0},
		{"ABS({a})", map[string]any{"a": -4}, 4.0},
		{"{Area of Wall} - {p1}", map[string]any{"Area of Wall": 10, "p1": 4}, 6.0},
		{"{flag} ? 1 : 2", map[string]any{"flag": true}, 1},
		{"{a} + p1", map[string]any{"a": 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			f, err := formula.Compile(tt.text)
			require.NoError(t, err)

			got, err := f.Eval(tt.env)
			if tt.want == nil {
				assert.Error(t, err, "p1 is not a placeholder and has no value")
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormulaErrors(t *testing.T) {
	t.Parallel()

	_, err := formula.Compile("{Qty} *")
	assert.ErrorIs(t, err, formula.ErrInvalidFormula)

	f, err := formula.Compile("{Qty} * {MAT}")
	require.NoError(t, err)
	assert.Equal(t, []string{"Qty", "MAT"}, f.Placeholders())
	assert.Equal(t, "{Qty} * {MAT}", f.String())

	_, err = f.Eval(map[string]any{"Qty": 1})
	assert.ErrorIs(t, err, formula.ErrUnknownPlaceholder)

	_, err = f.Eval(map[string]any{"Qty": 1, "MAT": "brick"})
	assert.ErrorIs(t, err, formula.ErrNotANumber)

	_, err = f.Eval(map[string]any{"Qty": 1, "MAT": []any{1}})
	assert.ErrorIs(t, err, formula.ErrNotANumber)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	rec := record.NewMap(4)
	rec.Set("Qty", "")
	rec.Set("MAT", "0.1")
	rec.Set("QtyView", "ROUNDUP(({Qty}*(1+{MAT})),0)")
	rec.Set("Total", "{QtyView}*{Price}")
	rec.Set("Name", "north")

	v, err := formula.Evaluate(rec, "QtyView")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "empty Qty counts as 0")

	rec.Set("Qty", 5)

	v, err = formula.Evaluate(rec, "Total", formula.WithVariables(map[string]any{"Price": "2.5"}))
	require.NoError(t, err)
	assert.InDelta(t, 15.0, v, 1e-9)

	v, err = formula.Evaluate(rec, "Name")
	require.NoError(t, err)
	assert.Equal(t, "north", v)

	_, err = formula.Evaluate(rec, "Total")
	assert.ErrorIs(t, err, formula.ErrUnknownPlaceholder)

	_, err = formula.Evaluate(rec, "Missing")
	assert.ErrorIs(t, err, formula.ErrUnknownPlaceholder)
}

func TestEvaluateCycle(t *testing.T) {
	t.Parallel()

	rec := map[string]any{"A": "{B}+1", "B": "{C}*2", "C": "{A}", "D": "{D}"}

	_, err := formula.Evaluate(record.Must(rec), "A")
	require.ErrorIs(t, err, formula.ErrFormulaCycle)
	assert.Contains(t, err.Error(), "A -> B -> C -> A")

	_, err = formula.Evaluate(record.Must(rec), "D")
	assert.ErrorIs(t, err, formula.ErrFormulaCycle)
}

func TestEvaluateAll(t *testing.T) {
	t.Parallel()

	src, err := record.FromJSON([]byte(`{
		"Qty": "4",
		"Double": "{Qty}*2",
		"Lines": [{"Qty": 2, "Half": "{Qty}/2"}],
		"Inner": {"Qty": 3, "Triple": "{Qty}*3"},
		"Note": null
	}`))
	require.NoError(t, err)

	out, err := formula.EvaluateAll(src)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"Qty":    "4",
		"Double": 8.0,
		"Lines":  []any{map[string]any{"Qty": 2.0, "Half": 1.0}},
		"Inner":  map[string]any{"Qty": 3.0, "Triple": 9.0},
		"Note":   nil,
	}, out.ToMap())
	assert.Equal(t, []string{"Qty", "Double", "Lines", "Inner", "Note"}, out.Names())
}

func ExampleEvaluate() {
	wall := map[string]any{
		"Qty":     "5",
		"MAT":     "0.1",
		"QtyView": "ROUNDUP(({Qty}*(1+{MAT})),0)",
	}

	v, err := formula.Evaluate(record.Must(wall), "QtyView")
	fmt.Println(v, err)
	// Output:
	// 6 <nil>
}
