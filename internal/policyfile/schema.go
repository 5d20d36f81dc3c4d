package policyfile

import (
	"errors"
	"strings"
)

// File is a parsed policy file.
type File struct {
	// Version of the file format. Defaults to "1".
	Version string `yaml:"version,omitempty"`

	// Priority is one of merge, left, right. Defaults to merge.
	Priority string `yaml:"priority,omitempty"`

	// Lists is strict or truncate. Defaults to strict.
	Lists string `yaml:"lists,omitempty"`

	Ignore []IgnoreEntry `yaml:"ignore,omitempty"`

	// Aliases maps destination field names to source keys.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	Normalize bool `yaml:"normalize,omitempty"`
	Lenient   bool `yaml:"lenient,omitempty"`
}

// IgnoreEntry names a property dropped from one owner type.
type IgnoreEntry struct {
	Owner    string `yaml:"owner"`
	Property string `yaml:"property"`
}

func (e IgnoreEntry) String() string {
	return e.Owner + "." + e.Property
}

// UnmarshalYAML accepts both the mapping form and the "Owner.Property"
// shorthand. A shorthand without a dot ignores the property on documents.
func (e *IgnoreEntry) UnmarshalYAML(unmarshal func(any) error) error {
	var short string
	if err := unmarshal(&short); err == nil {
		owner, property, found := strings.Cut(short, ".")
		if !found {
			owner, property = "", short
		}

		*e = IgnoreEntry{Owner: owner, Property: property}

		return nil
	}

	type plain IgnoreEntry

	var full plain
	if err := unmarshal(&full); err != nil {
		return errors.New("expected Owner.Property or a mapping with owner and property")
	}

	*e = IgnoreEntry(full)

	return nil
}

// ParseIgnore parses the "Owner.Property" shorthand.
func ParseIgnore(text string) (IgnoreEntry, error) {
	owner, property, found := strings.Cut(text, ".")
	if !found || property == "" {
		return IgnoreEntry{}, errors.New("expected Owner.Property, got " + text)
	}

	return IgnoreEntry{Owner: owner, Property: property}, nil
}
