// Package primitive classifies scalar Go types and converts values between
// them under explicitly allowed conversion categories.
package primitive

import (
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is the scalar kind of a Go type. The zero value means the type
// is not a scalar the projection knows about.
type KindEnum int

const (
	_ KindEnum = iota

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindUUID          // identifier, textual form is the canonical uuid string
	KindPrimitiveEnum // named integer, boolean or string type

	KindTotal = int(iota)
)

type numberClass int

const (
	notNumber numberClass = iota
	signed
	unsigned
	float
)

// traits describe a number kind. minBits and maxBits differ only for int
// and uint, whose width depends on the platform.
type traits struct {
	class            numberClass
	minBits, maxBits int
}

var kindTraits = [KindTotal]traits{
	KindInt:     {signed, 32, 64},
	KindInt8:    {signed, 8, 8},
	KindInt16:   {signed, 16, 16},
	KindInt32:   {signed, 32, 32},
	KindInt64:   {signed, 64, 64},
	KindUint:    {unsigned, 32, 64},
	KindUint8:   {unsigned, 8, 8},
	KindUint16:  {unsigned, 16, 16},
	KindUint32:  {unsigned, 32, 32},
	KindUint64:  {unsigned, 64, 64},
	KindFloat32: {float, 32, 32},
	KindFloat64: {float, 64, 64},
}

func (k KindEnum) traits() traits {
	if k <= 0 || int(k) >= KindTotal {
		return traits{}
	}

	return kindTraits[k]
}

func (k KindEnum) IsNumber() bool   { return k.traits().class != notNumber }
func (k KindEnum) IsInteger() bool  { return k.IsSigned() || k.IsUnsigned() }
func (k KindEnum) IsFloat() bool    { return k.traits().class == float }
func (k KindEnum) IsSigned() bool   { return k.traits().class == signed }
func (k KindEnum) IsUnsigned() bool { return k.traits().class == unsigned }

func (k KindEnum) IsTextual() bool {
	return k == KindString || k == KindPrimitiveEnum
}

// Bits returns the bit size of a number kind as strconv expects it.
// It panics for other kinds.
func (k KindEnum) Bits() int {
	t := k.traits()
	switch {
	case t.class == notNumber:
		panic("bits requested for a kind that is not a number: " + k.String())
	case t.minBits != t.maxBits:
		return strconv.IntSize
	}

	return t.maxBits
}

var exactKinds = map[reflect.Type]KindEnum{
	reflect.TypeFor[int]():           KindInt,
	reflect.TypeFor[int8]():          KindInt8,
	reflect.TypeFor[int16]():         KindInt16,
	reflect.TypeFor[int32]():         KindInt32,
	reflect.TypeFor[int64]():         KindInt64,
	reflect.TypeFor[uint]():          KindUint,
	reflect.TypeFor[uint8]():         KindUint8,
	reflect.TypeFor[uint16]():        KindUint16,
	reflect.TypeFor[uint32]():        KindUint32,
	reflect.TypeFor[uint64]():        KindUint64,
	reflect.TypeFor[float32]():       KindFloat32,
	reflect.TypeFor[float64]():       KindFloat64,
	reflect.TypeFor[bool]():          KindBool,
	reflect.TypeFor[string]():        KindString,
	reflect.TypeFor[time.Time]():     KindTime,
	reflect.TypeFor[time.Duration](): KindDuration,
	reflect.TypeFor[uuid.UUID]():     KindUUID,
}

// FromReflectType returns the kind of rtype. Named integer, boolean and
// string types other than the known ones are KindPrimitiveEnum.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if kind, ok := exactKinds[rtype]; ok {
		return kind
	}

	switch rtype.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool, reflect.String:
		return KindPrimitiveEnum
	}

	return 0
}
