package record

import (
	"reflect"
	"sort"
)

// mapRecord views a Go map keyed by strings. Keys are sorted so that
// enumeration is stable.
type mapRecord struct {
	value reflect.Value
	names []string
}

func newMapRecord(rv reflect.Value) *mapRecord {
	names := make([]string, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		names = append(names, iter.Key().String())
	}

	sort.Strings(names)

	return &mapRecord{value: rv, names: names}
}

func (r *mapRecord) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *mapRecord) Get(name string) (any, bool) {
	key := reflect.ValueOf(name).Convert(r.value.Type().Key())

	v := r.value.MapIndex(key)
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

func (r *mapRecord) TypeName() string {
	return r.value.Type().Name()
}
