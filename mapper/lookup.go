package mapper

import (
	"strings"

	"objects-mixer/internal/match"
	"objects-mixer/record"
)

// lookup finds the source property of f: its key, then its Go name, each
// matched exactly, then ignoring case, then normalized when enabled.
func (p *projection) lookup(rec record.Record, names []string, f Field) (string, any, bool) {
	keys := []string{f.Key}
	if f.Name != f.Key {
		keys = append(keys, f.Name)
	}

	for _, key := range keys {
		if v, ok := rec.Get(key); ok {
			return key, v, true
		}
	}

	for _, key := range keys {
		for _, name := range names {
			if strings.EqualFold(name, key) {
				v, _ := rec.Get(name)
				return name, v, true
			}
		}
	}

	if !p.m.normalized {
		return "", nil, false
	}

	for _, key := range keys {
		want := match.Normalize(key)

		for _, name := range names {
			if match.Normalize(name) == want {
				v, _ := rec.Get(name)
				return name, v, true
			}
		}
	}

	return "", nil, false
}
