package diagnostic_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objects-mixer/diagnostic"
)

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	var d diagnostic.Diagnostics

	assert.NoError(t, d.Error())

	d.AddInfo("MAP101", "Extra", "source property is not used")
	d.AddWarning("MIX001", "Inner.Name", "left value kept")
	d.AddError("MAP102", "Id", "missing", "ID", "Ident")

	require.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())

	all := d.All()
	assert.Equal(t, diagnostic.SeverityError, all[0].Severity)
	assert.Equal(t, diagnostic.SeverityWarning, all[1].Severity)
	assert.Equal(t, diagnostic.SeverityInfo, all[2].Severity)

	assert.Len(t, d.ByCode("MIX001"), 1)
	assert.EqualError(t, d.Error(), "Id: [MAP102] missing (did you mean ID, Ident?)")

	var other diagnostic.Diagnostics
	other.AddWarning("MIX002", "Items", "shape")
	d.Merge(other)
	assert.Len(t, d.Warnings, 2)
}

func ExampleDiagnostic_String() {
	fmt.Println(diagnostic.Diagnostic{Code: "MIX001", Path: "Qty", Message: "conflict, left value kept"})
	fmt.Println(diagnostic.Severity(7))
	// Output:
	// Qty: [MIX001] conflict, left value kept
	// unknown
}
