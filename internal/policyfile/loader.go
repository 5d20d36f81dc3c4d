package policyfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidPolicy = errors.New("invalid policy file")

const (
	listsStrict   = "strict"
	listsTruncate = "truncate"
)

// LoadFile loads and parses a YAML policy file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and checks its values.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	applyDefaults(&f)

	if diags := Validate(&f); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, diags.Error())
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Priority == "" {
		f.Priority = "merge"
	}

	if f.Lists == "" {
		f.Lists = listsStrict
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write policy file %s: %w", path, err)
	}

	return nil
}
