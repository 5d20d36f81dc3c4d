package record

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// FromJSON parses a JSON object into a Record. Properties keep document order.
func FromJSON(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidDocument)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: json %s is not an object", ErrInvalidDocument, doc.Type)
	}

	return newJSONRecord(doc), nil
}

type jsonRecord struct {
	names  []string
	values map[string]any
}

func newJSONRecord(doc gjson.Result) *jsonRecord {
	r := &jsonRecord{values: map[string]any{}}

	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, dup := r.values[name]; !dup {
			r.names = append(r.names, name)
		}

		r.values[name] = jsonValue(value)

		return true
	})

	return r
}

func (r *jsonRecord) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *jsonRecord) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *jsonRecord) TypeName() string {
	return ""
}

// jsonValue converts a JSON value into the record model.
func jsonValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return jsonNumber(v)
	case gjson.String:
		return v.String()
	}

	if v.IsObject() {
		return newJSONRecord(v)
	}

	if v.IsArray() {
		items := v.Array()

		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonValue(item)
		}

		return out
	}

	return nil
}

// maxExactInt is the largest integer every float64 holds exactly.
const maxExactInt = 1 << 53

// jsonNumber returns numbers as float64, except integer literals a float64
// cannot hold exactly, which stay int64 or uint64.
func jsonNumber(v gjson.Result) any {
	if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
		if n > maxExactInt || n < -maxExactInt {
			return n
		}

		return float64(n)
	}

	if n, err := strconv.ParseUint(v.Raw, 10, 64); err == nil {
		return n
	}

	return v.Float()
}

func jsonKind(v gjson.Result) Kind {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return KindNull
	case v.IsObject():
		return KindRecord
	case v.IsArray():
		return KindList
	}

	return scalarKind(v.String())
}
