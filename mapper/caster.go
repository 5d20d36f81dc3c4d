package mapper

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"objects-mixer/internal/common"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
)

var errorType = reflect.TypeFor[error]()

// CasterPair keys a caster by its source and destination types.
type CasterPair struct{ Src, Dst reflect.Type }

// Caster is a user function converting a source scalar into a destination type.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster if it is a valid caster function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
//
// A false bool result means the caster declined the value, projection then
// falls back to the built-in conversions.
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Pointer && src.Elem().Kind() == reflect.Pointer {
		return Caster{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Pointer && dst.Elem().Kind() == reflect.Pointer {
		return Caster{}, ErrDoublePointer
	}

	caster := Caster{Src: src, Dst: dst, fn: fnVal}

	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		alias, name := common.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))
		caster.Name = name
		caster.PackageAlias = common.Second(path.Split(alias))
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}

		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true

		return caster, nil
	}
}

// Pair returns the key the caster is registered under.
func (c Caster) Pair() CasterPair {
	return CasterPair{Src: c.Src, Dst: c.Dst}
}

func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

// call runs the caster on v. The bool result is false when the caster
// declined the value.
func (c Caster) call(v reflect.Value) (reflect.Value, bool, error) {
	out := c.fn.Call([]reflect.Value{v})

	switch {
	case c.HasBool && c.HasErr:
		if err, _ := out[2].Interface().(error); err != nil {
			return reflect.Value{}, false, fmt.Errorf("caster %s: %w", c, err)
		}

		return out[0], out[1].Bool(), nil
	case c.HasBool:
		return out[0], out[1].Bool(), nil
	case c.HasErr:
		if err, _ := out[1].Interface().(error); err != nil {
			return reflect.Value{}, false, fmt.Errorf("caster %s: %w", c, err)
		}
	}

	return out[0], true, nil
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}
