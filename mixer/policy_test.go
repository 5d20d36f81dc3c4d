package mixer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objects-mixer/mixer"
	"objects-mixer/record"
)

type Person struct {
	Name     string
	Birthday string
	Secret   string `mix:"-"`
}

type Employee struct {
	Person
	Badge string
	Empty struct{}
	Zero  struct{}
}

func TestPolicyImmutable(t *testing.T) {
	t.Parallel()

	base := mixer.NewPolicy()
	left := base.WithLeftPriority()
	ignoring := left.Ignoring("Wall", "Qty")
	more := ignoring.Ignoring("Wall", "MAT")

	assert.Equal(t, mixer.ValueMerge, base.Priority())
	assert.Equal(t, mixer.LeftPriority, left.Priority())
	assert.Equal(t, 0, left.IgnoredCount())
	assert.Equal(t, 1, ignoring.IgnoredCount())
	assert.Equal(t, 2, more.IgnoredCount())
	assert.True(t, more.Ignores("Wall", "MAT"))
	assert.False(t, ignoring.Ignores("Wall", "MAT"))
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	for _, p := range []mixer.Priority{mixer.ValueMerge, mixer.LeftPriority, mixer.RightPriority} {
		got, err := mixer.ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := mixer.ParsePriority("middle")
	assert.Error(t, err)
	assert.Equal(t, "unknown", mixer.Priority(9).String())
}

func TestIgnoring(t *testing.T) {
	t.Parallel()

	left := Wall{Name: "l", Qty: "1", MAT: "x"}
	right := map[string]any{"Name": "r", "Qty": "2", "Only": "o"}

	tests := []struct {
		name   string
		policy mixer.Policy
		names  []string
	}{
		{"nothing ignored", mixer.NewPolicy(), []string{"QtyView", "MAT", "Only", "Name", "Qty"}},
		{"shared property kept", mixer.NewPolicy().Ignoring("Wall", "Qty"), []string{"QtyView", "MAT", "Only", "Name", "Qty"}},
		{"left only dropped", mixer.NewPolicy().Ignoring("Wall", "MAT"), []string{"QtyView", "Only", "Name", "Qty"}},
		{"right only dropped", mixer.NewPolicy().Ignoring("", "Only"), []string{"QtyView", "MAT", "Name", "Qty"}},
		{"any owner", mixer.NewPolicy().Ignoring(mixer.AnyOwner, "Only"), []string{"QtyView", "MAT", "Name", "Qty"}},
		{"other owner", mixer.NewPolicy().Ignoring("Wall", "Only"), []string{"QtyView", "MAT", "Only", "Name", "Qty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := tt.policy.Merge(left, right)
			require.NoError(t, err)

			assert.Equal(t, tt.names, out.Names())
			assert.Equal(t, "1", get(t, out, "Qty"), "both non-empty, left wins")
			assert.Equal(t, "l", get(t, out, "Name"))
		})
	}
}

func TestIgnoringNested(t *testing.T) {
	t.Parallel()

	left := Outer{Inner: Inner{Id: "1", Name: "a"}}
	right := Outer{Inner: Inner{Id: "2", Name: "b"}}

	out, err := mixer.NewPolicy().Ignoring("Inner", "Name").Merge(left, right)
	require.NoError(t, err)

	inner := get(t, out, "Inner").(*record.Map)
	assert.Equal(t, map[string]any{"Id": "1", "Name": "a"}, inner.ToMap())

	out, err = mixer.NewPolicy().Ignoring("Inner", "Name").Merge(left, map[string]any{
		"Inner": map[string]any{"Id": "2"},
	})
	require.NoError(t, err)

	inner = get(t, out, "Inner").(*record.Map)
	assert.Equal(t, map[string]any{"Id": "1"}, inner.ToMap())
}

func TestIgnoringField(t *testing.T) {
	t.Parallel()

	var e Employee

	policy := mixer.NewPolicy().IgnoringField(&e, &e.Birthday)
	require.NoError(t, policy.Err())
	assert.True(t, policy.Ignores("Employee", "Birthday"))

	policy = mixer.NewPolicy().IgnoringField(&e, &e.Person.Name)
	require.NoError(t, policy.Err())
	assert.True(t, policy.Ignores("Employee", "Name"))

	tests := []struct {
		name            string
		owner, fieldPtr any
	}{
		{"not a pointer", e, &e.Badge},
		{"nil field pointer", &e, (*string)(nil)},
		{"foreign field", &e, new(string)},
		{"skipped field", &e, &e.Secret},
		{"zero size fields share an address", &e, &e.Empty},
		{"anonymous struct", &struct{ A int }{}, new(int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy := mixer.NewPolicy().IgnoringField(tt.owner, tt.fieldPtr)
			require.ErrorIs(t, policy.Err(), mixer.ErrAmbiguousIgnoreExpression)

			_, err := policy.Merge(map[string]any{}, map[string]any{})
			assert.ErrorIs(t, err, mixer.ErrAmbiguousIgnoreExpression)
		})
	}
}

func TestIgnoringEmptyName(t *testing.T) {
	t.Parallel()

	policy := mixer.NewPolicy().Ignoring("Wall", "").Ignoring("Wall", "Qty")
	assert.ErrorIs(t, policy.Err(), mixer.ErrAmbiguousIgnoreExpression)
}
