package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"objects-mixer/primitive"
)

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to primitive.KindEnum
		want     primitive.CategoryEnum
	}{
		{primitive.KindInt8, primitive.KindInt, primitive.CategorySafeNumber},
		{primitive.KindInt32, primitive.KindInt, primitive.CategorySafeNumber},
		{primitive.KindInt, primitive.KindInt64, primitive.CategorySafeNumber},
		{primitive.KindInt, primitive.KindInt32, primitive.CategoryUnsafeNumber},
		{primitive.KindInt64, primitive.KindInt, primitive.CategoryUnsafeNumber},
		{primitive.KindUint8, primitive.KindInt16, primitive.CategorySafeNumber},
		{primitive.KindUint16, primitive.KindInt16, primitive.CategoryUnsafeNumber},
		{primitive.KindUint32, primitive.KindInt64, primitive.CategorySafeNumber},
		{primitive.KindInt8, primitive.KindUint64, primitive.CategoryUnsafeNumber},
		{primitive.KindInt16, primitive.KindFloat32, primitive.CategorySafeNumber},
		{primitive.KindInt32, primitive.KindFloat32, primitive.CategoryUnsafeNumber},
		{primitive.KindInt32, primitive.KindFloat64, primitive.CategorySafeNumber},
		{primitive.KindInt64, primitive.KindFloat64, primitive.CategoryUnsafeNumber},
		{primitive.KindFloat32, primitive.KindFloat64, primitive.CategorySafeNumber},
		{primitive.KindFloat64, primitive.KindFloat32, primitive.CategoryUnsafeNumber},
		{primitive.KindString, primitive.KindInt, primitive.CategoryTextNumber},
		{primitive.KindInt, primitive.KindBool, primitive.CategoryNumericBool},
		{primitive.KindFloat64, primitive.KindBool, primitive.CategoryNone},
		{primitive.KindString, primitive.KindBool, primitive.CategoryTextualBool},
		{primitive.KindInt64, primitive.KindTime, primitive.CategoryTimestamp},
		{primitive.KindDuration, primitive.KindInt, primitive.CategoryNanoseconds},
		{primitive.KindUint64, primitive.KindDuration, primitive.CategoryNone},
		{primitive.KindDuration, primitive.KindFloat64, primitive.CategorySeconds},
		{primitive.KindPrimitiveEnum, primitive.KindPrimitiveEnum, primitive.CategoryEnumString},
		{primitive.KindString, primitive.KindString, primitive.CategoryNone},
		{primitive.KindUUID, primitive.KindString, primitive.CategoryIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, primitive.CategoryOf(primitive.ConversionPair{From: tt.from, To: tt.to}))
		})
	}
}

func TestBits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 16, primitive.KindUint16.Bits())
	assert.Equal(t, 32, primitive.KindFloat32.Bits())
	assert.Contains(t, []int{32, 64}, primitive.KindInt.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
}
