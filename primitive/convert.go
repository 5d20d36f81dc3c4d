package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotAllowed      = errors.New("conversion is not allowed")
	ErrOutOfRange      = errors.New("value out of range")
	ErrPrecisionLoss   = errors.New("value loses precision")
	ErrInvalidEnum     = errors.New("invalid enum value")
	ErrInvalidBoolText = errors.New("only strings true/false, yes/no, on/off are allowed for bool")
	ErrInvalidBoolNum  = errors.New("only numbers 0 and 1 are allowed for bool")
)

// converter builds a value of type dst from src. Kinds of src and dst are
// already known to match the pair the converter is registered for.
type converter func(src reflect.Value, dst reflect.Type) (reflect.Value, error)

var converters map[ConversionPair]converter

type validator interface{ IsValid() bool }

func init() {
	converters = map[ConversionPair]converter{}

	// CategorySafeNumber
	// CategoryUnsafeNumber
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(0); int(toKind) < KindTotal; toKind++ {
			if toKind.IsNumber() {
				converters[ConversionPair{fromKind, toKind}] = convertNumber
			}
		}
	}

	// CategoryTextNumber
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsNumber() {
			continue
		}

		converters[ConversionPair{numberKind, KindString}] = formatNumber
		converters[ConversionPair{KindString, numberKind}] = parseNumber
	}

	// CategoryNumericBool
	for kind := KindEnum(0); int(kind) < KindTotal; kind++ {
		if !kind.IsInteger() {
			continue
		}

		converters[ConversionPair{kind, KindBool}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			n, err := convertNumber(src, reflect.TypeFor[int64]())
			if err != nil {
				return reflect.Value{}, err
			}

			switch n.Int() {
			case 0:
				return valueOf(false, dst), nil
			case 1:
				return valueOf(true, dst), nil
			}

			return reflect.Value{}, fmt.Errorf("%w, got: %d", ErrInvalidBoolNum, n.Int())
		}
		converters[ConversionPair{KindBool, kind}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			var n int64
			if src.Bool() {
				n = 1
			}

			return convertNumber(reflect.ValueOf(n), dst)
		}
	}

	// CategoryTextualBool
	converters[ConversionPair{KindString, KindBool}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		switch strings.ToLower(src.String()) {
		case "true", "yes", "on":
			return valueOf(true, dst), nil
		case "false", "no", "off":
			return valueOf(false, dst), nil
		}

		return reflect.Value{}, fmt.Errorf("%w, got: %s", ErrInvalidBoolText, src.String())
	}
	converters[ConversionPair{KindBool, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(strconv.FormatBool(src.Bool()), dst), nil
	}

	// CategoryDatetime
	converters[ConversionPair{KindString, KindTime}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		t, err := ParseTime(src.String())
		if err != nil {
			return reflect.Value{}, err
		}

		return valueOf(t, dst), nil
	}
	converters[ConversionPair{KindTime, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(src.Interface().(time.Time).Format(time.RFC3339Nano), dst), nil
	}

	// CategoryTimestamp
	for kind := KindEnum(0); int(kind) < KindTotal; kind++ {
		if !kind.IsInteger() {
			continue
		}

		converters[ConversionPair{kind, KindTime}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			n, err := convertNumber(src, reflect.TypeFor[int64]())
			if err != nil {
				return reflect.Value{}, err
			}

			return valueOf(time.Unix(n.Int(), 0), dst), nil
		}
		converters[ConversionPair{KindTime, kind}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			return convertNumber(reflect.ValueOf(src.Interface().(time.Time).Unix()), dst)
		}
	}

	// CategoryDuration
	converters[ConversionPair{KindString, KindDuration}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		d, err := time.ParseDuration(src.String())
		if err != nil {
			return reflect.Value{}, err
		}

		return valueOf(d, dst), nil
	}
	converters[ConversionPair{KindDuration, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(time.Duration(src.Int()).String(), dst), nil
	}

	// CategoryNanoseconds
	for kind := KindEnum(0); int(kind) < KindTotal; kind++ {
		if !kind.IsInteger() {
			continue
		}

		converters[ConversionPair{kind, KindDuration}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			n, err := convertNumber(src, reflect.TypeFor[int64]())
			if err != nil {
				return reflect.Value{}, err
			}

			return valueOf(time.Duration(n.Int()), dst), nil
		}
		converters[ConversionPair{KindDuration, kind}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			return convertNumber(reflect.ValueOf(src.Int()), dst)
		}
	}

	// CategorySeconds
	for _, kind := range []KindEnum{KindFloat32, KindFloat64} {
		converters[ConversionPair{kind, KindDuration}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			seconds := src.Float() * float64(time.Second)
			if math.IsNaN(seconds) || seconds < math.MinInt64 || seconds > math.MaxInt64 {
				return reflect.Value{}, fmt.Errorf("%w: %v seconds", ErrOutOfRange, src.Float())
			}

			return valueOf(time.Duration(seconds), dst), nil
		}
		converters[ConversionPair{KindDuration, kind}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			return convertNumber(reflect.ValueOf(time.Duration(src.Int()).Seconds()), dst)
		}
	}

	// CategoryEnumString
	converters[ConversionPair{KindString, KindPrimitiveEnum}] = textToEnum
	converters[ConversionPair{KindPrimitiveEnum, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		text, ok := enumText(src)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s has no textual form", ErrNotAllowed, src.Type())
		}

		return valueOf(text, dst), nil
	}
	converters[ConversionPair{KindPrimitiveEnum, KindPrimitiveEnum}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		if src.Kind() != reflect.String && dst.Kind() != reflect.String && src.Type().ConvertibleTo(dst) {
			return checkValid(src.Convert(dst))
		}

		text, ok := enumText(src)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
		}

		return textToEnum(reflect.ValueOf(text), dst)
	}

	// CategoryIdentifier
	converters[ConversionPair{KindString, KindUUID}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(ParseIdentifier(src.String()), dst), nil
	}
	converters[ConversionPair{KindUUID, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(src.Interface().(uuid.UUID).String(), dst), nil
	}
}

// Convert converts src into a value of type dst using the conversions of the
// allowed categories. A pair outside of the allowed categories is reported
// with ErrNotAllowed.
func Convert(src reflect.Value, dst reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	pair := ConversionPair{FromReflectType(src.Type()), FromReflectType(dst)}

	fn, ok := converters[pair]
	if !ok || !Allowed(pair, allowed) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
	}

	return fn(src, dst)
}

// ParseIdentifier parses text as an uuid and returns uuid.Nil when the text is
// not a valid identifier.
func ParseIdentifier(text string) uuid.UUID {
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil
	}

	return id
}

// ParseTime accepts RFC3339 timestamps with optional fractional seconds as
// well as the plain date time and date layouts.
func ParseTime(text string) (time.Time, error) {
	var firstErr error

	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}

func valueOf(v any, dst reflect.Type) reflect.Value {
	return reflect.ValueOf(v).Convert(dst)
}

func convertNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	switch {
	case src.CanInt():
		i := src.Int()

		switch {
		case out.CanInt():
			if out.OverflowInt(i) {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", ErrOutOfRange, i, dst)
			}

			out.SetInt(i)
		case out.CanUint():
			if i < 0 || out.OverflowUint(uint64(i)) {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", ErrOutOfRange, i, dst)
			}

			out.SetUint(uint64(i))
		case out.CanFloat():
			out.SetFloat(float64(i))
		}
	case src.CanUint():
		u := src.Uint()

		switch {
		case out.CanInt():
			if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", ErrOutOfRange, u, dst)
			}

			out.SetInt(int64(u))
		case out.CanUint():
			if out.OverflowUint(u) {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", ErrOutOfRange, u, dst)
			}

			out.SetUint(u)
		case out.CanFloat():
			out.SetFloat(float64(u))
		}
	case src.CanFloat():
		f := src.Float()

		switch {
		case out.CanInt():
			if f != math.Trunc(f) {
				return reflect.Value{}, fmt.Errorf("%w: %v for %s", ErrPrecisionLoss, f, dst)
			}

			if f < math.MinInt64 || f >= math.MaxInt64 || out.OverflowInt(int64(f)) {
				return reflect.Value{}, fmt.Errorf("%w: %v for %s", ErrOutOfRange, f, dst)
			}

			out.SetInt(int64(f))
		case out.CanUint():
			if f != math.Trunc(f) {
				return reflect.Value{}, fmt.Errorf("%w: %v for %s", ErrPrecisionLoss, f, dst)
			}

			if f < 0 || f >= math.MaxUint64 || out.OverflowUint(uint64(f)) {
				return reflect.Value{}, fmt.Errorf("%w: %v for %s", ErrOutOfRange, f, dst)
			}

			out.SetUint(uint64(f))
		case out.CanFloat():
			if !math.IsInf(f, 0) && out.OverflowFloat(f) {
				return reflect.Value{}, fmt.Errorf("%w: %v for %s", ErrOutOfRange, f, dst)
			}

			out.SetFloat(f)
		}
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
	}

	return out, nil
}

func formatNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	var text string

	switch {
	case src.CanInt():
		text = strconv.FormatInt(src.Int(), 10)
	case src.CanUint():
		text = strconv.FormatUint(src.Uint(), 10)
	default:
		text = strconv.FormatFloat(src.Float(), 'f', -1, FromReflectType(src.Type()).Bits())
	}

	return valueOf(text, dst), nil
}

func parseNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	kind := FromReflectType(dst)
	text := strings.TrimSpace(src.String())

	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(n).Convert(dst), nil
	case kind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(n).Convert(dst), nil
	}

	f, err := strconv.ParseFloat(text, kind.Bits())
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(f).Convert(dst), nil
}

// enumText returns the textual form of an enum value: its String method or
// its underlying string.
func enumText(src reflect.Value) (string, bool) {
	if s, ok := src.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}

	if src.Kind() == reflect.String {
		return src.String(), true
	}

	return "", false
}

func textToEnum(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	text := src.String()

	switch dst.Kind() {
	case reflect.String:
		return checkValid(reflect.ValueOf(text).Convert(dst))
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q for %s", ErrInvalidEnum, text, dst)
		}

		return checkValid(reflect.ValueOf(b).Convert(dst))
	}

	out := reflect.New(dst).Elem()

	switch {
	case out.CanInt():
		n, err := strconv.ParseInt(text, 10, dst.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q for %s", ErrInvalidEnum, text, dst)
		}

		out.SetInt(n)
	case out.CanUint():
		n, err := strconv.ParseUint(text, 10, dst.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q for %s", ErrInvalidEnum, text, dst)
		}

		out.SetUint(n)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
	}

	return checkValid(out)
}

func checkValid(v reflect.Value) (reflect.Value, error) {
	if val, ok := v.Interface().(validator); ok && !val.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %v is not a valid value for %s", ErrInvalidEnum, v.Interface(), v.Type())
	}

	return v, nil
}
