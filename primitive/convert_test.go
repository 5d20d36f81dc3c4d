package primitive_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objects-mixer/primitive"
)

type Color string

func (c Color) IsValid() bool { return c == "red" || c == "green" }

type Level int

func (l Level) String() string {
	switch l {
	case 1:
		return "low"
	case 2:
		return "high"
	}

	return "unknown"
}

type Priority int

func (p Priority) IsValid() bool { return p >= 1 && p <= 3 }

func TestConvert(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("0e5b2f9a-7b43-4c7e-9d1a-3f2c6d8e4b11")
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		src     any
		dst     reflect.Type
		allowed primitive.CategoryEnum
		want    any
	}{
		{"int widening", int8(5), reflect.TypeFor[int64](), primitive.CategorySafeNumber, int64(5)},
		{"integral float to int", 3.0, reflect.TypeFor[int](), primitive.CategoryUnsafeNumber, 3},
		{"int to float", 7, reflect.TypeFor[float64](), primitive.CategoryUnsafeNumber, 7.0},
		{"text to int", "42", reflect.TypeFor[int](), primitive.CategoryTextNumber, 42},
		{"text to float", "1.25", reflect.TypeFor[float64](), primitive.CategoryTextNumber, 1.25},
		{"float to text", 1.5, reflect.TypeFor[string](), primitive.CategoryTextNumber, "1.5"},
		{"uint to text", uint16(9), reflect.TypeFor[string](), primitive.CategoryTextNumber, "9"},
		{"one to bool", 1, reflect.TypeFor[bool](), primitive.CategoryNumericBool, true},
		{"bool to int", true, reflect.TypeFor[int](), primitive.CategoryNumericBool, 1},
		{"yes to bool", "Yes", reflect.TypeFor[bool](), primitive.CategoryTextualBool, true},
		{"bool to text", false, reflect.TypeFor[string](), primitive.CategoryTextualBool, "false"},
		{"rfc3339 to time", "2024-05-01T12:30:00Z", reflect.TypeFor[time.Time](), primitive.CategoryDatetime, at},
		{"date time to time", "2024-05-01 12:30:00", reflect.TypeFor[time.Time](), primitive.CategoryDatetime, at},
		{"time to text", at, reflect.TypeFor[string](), primitive.CategoryDatetime, "2024-05-01T12:30:00Z"},
		{"unix to time", int64(at.Unix()), reflect.TypeFor[time.Time](), primitive.CategoryTimestamp, time.Unix(at.Unix(), 0)},
		{"text to duration", "2h45m", reflect.TypeFor[time.Duration](), primitive.CategoryDuration, 2*time.Hour + 45*time.Minute},
		{"nanoseconds to duration", 1500, reflect.TypeFor[time.Duration](), primitive.CategoryNanoseconds, 1500 * time.Nanosecond},
		{"seconds to duration", 1.5, reflect.TypeFor[time.Duration](), primitive.CategorySeconds, 1500 * time.Millisecond},
		{"duration to seconds", 90 * time.Second, reflect.TypeFor[float64](), primitive.CategorySeconds, 90.0},
		{"text to string enum", "red", reflect.TypeFor[Color](), primitive.CategoryEnumString, Color("red")},
		{"stringer enum to text", Level(2), reflect.TypeFor[string](), primitive.CategoryEnumString, "high"},
		{"text to int enum", "2", reflect.TypeFor[Priority](), primitive.CategoryEnumString, Priority(2)},
		{"int enum to int enum", Priority(1), reflect.TypeFor[Level](), primitive.CategoryEnumString, Level(1)},
		{"text to uuid", id.String(), reflect.TypeFor[uuid.UUID](), primitive.CategoryIdentifier, id},
		{"bad text to uuid", "not-an-id", reflect.TypeFor[uuid.UUID](), primitive.CategoryIdentifier, uuid.Nil},
		{"uuid to text", id, reflect.TypeFor[string](), primitive.CategoryIdentifier, id.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := primitive.Convert(reflect.ValueOf(tt.src), tt.dst, tt.allowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface(), spew.Sdump(tt.src))
		})
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     any
		dst     reflect.Type
		allowed primitive.CategoryEnum
		want    error
	}{
		{"category not allowed", "42", reflect.TypeFor[int](), primitive.CategorySafeNumber, primitive.ErrNotAllowed},
		{"no conversion", struct{}{}, reflect.TypeFor[int](), primitive.CategoryAll, primitive.ErrNotAllowed},
		{"fractional float to int", 2.5, reflect.TypeFor[int](), primitive.CategoryUnsafeNumber, primitive.ErrPrecisionLoss},
		{"overflow", 300, reflect.TypeFor[int8](), primitive.CategoryUnsafeNumber, primitive.ErrOutOfRange},
		{"negative to unsigned", -1, reflect.TypeFor[uint](), primitive.CategoryUnsafeNumber, primitive.ErrOutOfRange},
		{"two to bool", 2, reflect.TypeFor[bool](), primitive.CategoryNumericBool, primitive.ErrInvalidBoolNum},
		{"maybe to bool", "maybe", reflect.TypeFor[bool](), primitive.CategoryTextualBool, primitive.ErrInvalidBoolText},
		{"invalid string enum", "blue", reflect.TypeFor[Color](), primitive.CategoryEnumString, primitive.ErrInvalidEnum},
		{"invalid int enum", "9", reflect.TypeFor[Priority](), primitive.CategoryEnumString, primitive.ErrInvalidEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := primitive.Convert(reflect.ValueOf(tt.src), tt.dst, tt.allowed)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConvertTextNumberSyntax(t *testing.T) {
	t.Parallel()

	_, err := primitive.Convert(reflect.ValueOf("{Qty}*2"), reflect.TypeFor[int](), primitive.CategoryAll)
	assert.Error(t, err)
}

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uuid.Nil, primitive.ParseIdentifier(""))
	assert.Equal(t, uuid.Nil, primitive.ParseIdentifier("1234"))

	id := uuid.New()
	assert.Equal(t, id, primitive.ParseIdentifier(id.String()))
}
