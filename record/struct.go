package record

import (
	"reflect"
	"strings"
	"sync"
)

// StructField is a property of a struct record.
type StructField struct {
	Name  string
	Index []int
	Type  reflect.Type
}

var structFieldCache sync.Map // reflect.Type -> []StructField

// StructFields lists the properties of struct type t the way Of exposes
// them: exported fields in declaration order, embedded structs flattened,
// fields tagged mix:"-" skipped. An outer field shadows inner fields with
// the same name.
func StructFields(t reflect.Type) []StructField {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := structFieldCache.Load(t); ok {
		return cached.([]StructField)
	}

	fields := collectFields(t)
	actual, _ := structFieldCache.LoadOrStore(t, fields)

	return actual.([]StructField)
}

func collectFields(t reflect.Type) []StructField {
	var fields []StructField

	depth := map[string]int{}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}

		if f.Anonymous && flattened(f.Type) {
			continue
		}

		if tag, _, _ := strings.Cut(f.Tag.Get("mix"), ","); tag == "-" {
			continue
		}

		if skippedByParent(t, f.Index) {
			continue
		}

		if d, seen := depth[f.Name]; seen && d <= len(f.Index) {
			continue
		}

		depth[f.Name] = len(f.Index)
		fields = append(fields, StructField{Name: f.Name, Index: f.Index, Type: f.Type})
	}

	return fields
}

// flattened reports whether an embedded field of type t contributes its
// fields instead of being a property itself.
func flattened(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct && !isTextual(t)
}

// skippedByParent reports whether a promoted field comes from an embedded
// struct that is itself excluded.
func skippedByParent(t reflect.Type, index []int) bool {
	for i := 1; i < len(index); i++ {
		parent := t.FieldByIndex(index[:i])
		if tag, _, _ := strings.Cut(parent.Tag.Get("mix"), ","); tag == "-" {
			return true
		}

		if !flattened(parent.Type) {
			return true
		}
	}

	return false
}

type structRecord struct {
	value  reflect.Value
	fields []StructField
}

func newStructRecord(rv reflect.Value) *structRecord {
	return &structRecord{value: rv, fields: StructFields(rv.Type())}
}

func (r *structRecord) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}

	return names
}

func (r *structRecord) Get(name string) (any, bool) {
	for _, f := range r.fields {
		if f.Name != name {
			continue
		}

		fv, err := r.value.FieldByIndexErr(f.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			return nil, true
		}

		return fv.Interface(), true
	}

	return nil, false
}

func (r *structRecord) TypeName() string {
	return r.value.Type().Name()
}
