package mixer

import (
	"fmt"
	"reflect"

	"objects-mixer/record"
)

// IgnoringField is the typed form of Ignoring: structPtr points to a struct
// value and fieldPtr to one of its properties, as in
//
//	var w Wall
//	policy = policy.IgnoringField(&w, &w.Qty)
//
// The owner is the struct type name. A field pointer that matches no
// property, or more than one, makes the policy fail with
// ErrAmbiguousIgnoreExpression.
func (p Policy) IgnoringField(structPtr, fieldPtr any) Policy {
	owner, name, err := resolveField(structPtr, fieldPtr)
	if err != nil {
		return p.fail(err)
	}

	return p.Ignoring(owner, name)
}

func resolveField(structPtr, fieldPtr any) (owner, name string, err error) {
	sv := reflect.ValueOf(structPtr)
	if sv.Kind() != reflect.Pointer || sv.IsNil() || sv.Elem().Kind() != reflect.Struct {
		return "", "", fmt.Errorf("%w: %T is not a pointer to a struct", ErrAmbiguousIgnoreExpression, structPtr)
	}

	fv := reflect.ValueOf(fieldPtr)
	if fv.Kind() != reflect.Pointer || fv.IsNil() {
		return "", "", fmt.Errorf("%w: %T is not a field pointer", ErrAmbiguousIgnoreExpression, fieldPtr)
	}

	st := sv.Elem().Type()
	if st.Name() == "" {
		return "", "", fmt.Errorf("%w: anonymous struct %s has no owner name", ErrAmbiguousIgnoreExpression, st)
	}

	var matches []string

	for _, f := range record.StructFields(st) {
		field, err := sv.Elem().FieldByIndexErr(f.Index)
		if err != nil {
			continue
		}

		if field.Type() == fv.Type().Elem() && field.Addr().Pointer() == fv.Pointer() {
			matches = append(matches, f.Name)
		}
	}

	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("%w: %s is not a property of %s", ErrAmbiguousIgnoreExpression, fv.Type(), st.Name())
	case 1:
		return st.Name(), matches[0], nil
	default:
		return "", "", fmt.Errorf("%w: field pointer matches %v of %s", ErrAmbiguousIgnoreExpression, matches, st.Name())
	}
}
