package record

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type textID string

func (id textID) String() string { return "id:" + string(id) }

func TestKindOf(t *testing.T) {
	t.Parallel()

	var (
		nilPtr   *int
		nilMap   map[string]any
		nilSlice []int
		n        = 5
	)

	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"nil", nil, KindNull},
		{"nil pointer", nilPtr, KindNull},
		{"nil map", nilMap, KindNull},
		{"nil slice", nilSlice, KindNull},
		{"string", "x", KindScalar},
		{"empty string", "", KindScalar},
		{"int", 3, KindScalar},
		{"pointer to int", &n, KindScalar},
		{"bool", true, KindScalar},
		{"bytes", []byte("abc"), KindScalar},
		{"uuid", uuid.New(), KindScalar},
		{"time", time.Now(), KindScalar},
		{"formula", "{Qty}*2", KindFormula},
		{"formula with spaces", "{Area of Wall With Openings Deducted}", KindFormula},
		{"braces without name", "{}", KindScalar},
		{"slice", []int{1, 2}, KindList},
		{"empty slice", []any{}, KindList},
		{"array", [2]string{"a", "b"}, KindList},
		{"struct", struct{ A int }{1}, KindRecord},
		{"string keyed map", map[string]int{"a": 1}, KindRecord},
		{"int keyed map", map[int]int{1: 1}, KindUnknown},
		{"ordered map", NewMap(0), KindRecord},
		{"func", func() {}, KindUnknown},
		{"json object", gjson.Parse(`{"a":1}`), KindRecord},
		{"json null", gjson.Parse(`null`), KindNull},
		{"json formula", gjson.Parse(`"{A}+1"`), KindFormula},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	var nilPtr *string

	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(nilPtr))
	assert.True(t, IsEmpty([]byte{}))

	assert.False(t, IsEmpty(textID("")), "stringer text is not empty")
	assert.False(t, IsEmpty(" "), "whitespace is not trimmed")
	assert.False(t, IsEmpty(0))
	assert.False(t, IsEmpty(false))
	assert.False(t, IsEmpty([]any{}), "lists are never empty")
	assert.False(t, IsEmpty(NewMap(0)), "records are never empty")
}

func TestText(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6f1c1c2a-52e4-4b9f-8f43-0b1f4d2c5a10")
	s := "ptr"

	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "abc", Text("abc"))
	assert.Equal(t, "ptr", Text(&s))
	assert.Equal(t, "42", Text(42))
	assert.Equal(t, "1.5", Text(1.5))
	assert.Equal(t, "1500000", Text(1500000.0))
	assert.Equal(t, "0.1", Text(float32(0.1)))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "id:7", Text(textID("7")))
	assert.Equal(t, id.String(), Text(id))
	assert.Equal(t, "bytes", Text([]byte("bytes")))
}

func TestList(t *testing.T) {
	t.Parallel()

	items, ok := List([]int{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, []any{1, 2, 3}, items)

	items, ok = List(gjson.Parse(`[1,"a",null]`))
	require.True(t, ok)
	assert.Equal(t, []any{1.0, "a", nil}, items)

	_, ok = List("abc")
	assert.False(t, ok)

	_, ok = List([]byte("abc"))
	assert.False(t, ok)
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	type Inner struct{ Name string }
	type Outer struct {
		Qty   *int
		Inner Inner
		Items []Inner
	}

	qty := 3
	src := Outer{Qty: &qty, Inner: Inner{Name: "a"}, Items: []Inner{{Name: "x"}, {Name: "y"}}}

	v, err := Materialize(src)
	require.NoError(t, err)

	m, ok := v.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"Qty", "Inner", "Items"}, m.Names())

	got, _ := m.Get("Qty")
	assert.Equal(t, 3, got)

	qty = 7
	got, _ = m.Get("Qty")
	assert.Equal(t, 3, got, "materialized values do not alias the source")

	assert.Equal(t, map[string]any{
		"Qty":   3,
		"Inner": map[string]any{"Name": "a"},
		"Items": []any{map[string]any{"Name": "x"}, map[string]any{"Name": "y"}},
	}, m.ToMap())

	_, err = Materialize(map[string]any{"Callback": func() {}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedValueShape))
	assert.Contains(t, err.Error(), "Callback")
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindScalar, KindFormula} {
		assert.True(t, k.IsScalar(), k)
		assert.False(t, k.IsContainer(), k)
	}

	for _, k := range []Kind{KindList, KindRecord} {
		assert.True(t, k.IsContainer(), k)
		assert.False(t, k.IsScalar(), k)
	}

	assert.False(t, KindNull.IsContainer())
	assert.False(t, KindNull.IsScalar())
}
