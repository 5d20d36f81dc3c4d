package mapper

import (
	"reflect"

	"objects-mixer/primitive"
)

// AliasFunc returns the source key of a destination field. A false result
// falls back to the mix and json tags, then to the field name.
type AliasFunc func(field reflect.StructField) (string, bool)

// Option configures a Mapper.
type Option func(*Mapper)

// DefaultCategories are the conversions a Mapper allows unless
// WithCategories says otherwise: everything but cutting lists into arrays.
const DefaultCategories = primitive.CategoryAll &^ primitive.CategoryUnsafeArray

// WithAliases sets the function naming the source key of each field.
func WithAliases(fn AliasFunc) Option {
	return func(m *Mapper) {
		m.aliases = fn
	}
}

// WithCategories sets the allowed scalar conversion categories.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(m *Mapper) {
		m.categories = categories
	}
}

// WithCaster registers a conversion function, see ParseCaster for the
// accepted signatures. A later caster for the same pair replaces the former.
func WithCaster(fn any) Option {
	return func(m *Mapper) {
		c, err := ParseCaster(fn)
		if err != nil {
			if m.err == nil {
				m.err = err
			}

			return
		}

		if m.casters == nil {
			m.casters = make(map[CasterPair]Caster)
		}

		m.casters[c.Pair()] = c
	}
}

// WithNormalizedNames matches source keys ignoring case, separators and
// camel case boundaries, so "unit_price" finds UnitPrice.
func WithNormalizedNames() Option {
	return func(m *Mapper) {
		m.normalized = true
	}
}

// Lenient leaves destination fields without a source property at their
// zero value instead of failing.
func Lenient() Option {
	return func(m *Mapper) {
		m.lenient = true
	}
}
