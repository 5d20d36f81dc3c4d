package policyfile

import (
	"reflect"

	"objects-mixer/mapper"
	"objects-mixer/mixer"
)

// Policy returns the merge policy described by the file.
func (f *File) Policy() (mixer.Policy, error) {
	return f.Apply(mixer.NewPolicy())
}

// Apply sets the priority, list mode and ignore entries of the file on base.
// Logger and conflict observer of base are kept.
func (f *File) Apply(base mixer.Policy) (mixer.Policy, error) {
	priority, err := mixer.ParsePriority(f.Priority)
	if err != nil {
		return base, err
	}

	p := base.WithPriority(priority)

	if f.Lists == listsTruncate {
		p = p.TruncatingLists()
	} else {
		p = p.StrictLists()
	}

	for _, e := range f.Ignore {
		p = p.Ignoring(e.Owner, e.Property)
	}

	return p, p.Err()
}

// MapperOptions returns the projection options described by the file.
func (f *File) MapperOptions() []mapper.Option {
	var opts []mapper.Option

	if len(f.Aliases) > 0 {
		aliases := f.Aliases
		opts = append(opts, mapper.WithAliases(func(field reflect.StructField) (string, bool) {
			alias, ok := aliases[field.Name]
			return alias, ok
		}))
	}

	if f.Normalize {
		opts = append(opts, mapper.WithNormalizedNames())
	}

	if f.Lenient {
		opts = append(opts, mapper.Lenient())
	}

	return opts
}
