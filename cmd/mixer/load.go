package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"objects-mixer/record"
)

// loadRecord reads a json or yaml record from file, or from in when file
// is "-". The format follows the extension, content decides otherwise.
func loadRecord(in io.Reader, file string) (record.Record, error) {
	var (
		data []byte
		err  error
	)

	if file == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(file)
	}

	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}

	var rec record.Record

	switch {
	case isYAML(file, data):
		rec, err = record.FromYAML(data)
	default:
		rec, err = record.FromJSON(data)
	}

	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}

	return rec, nil
}

func isYAML(file string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}

	trimmed := bytes.TrimSpace(data)

	return len(trimmed) == 0 || trimmed[0] != '{'
}

// writeRecord writes m as indented json, or as yaml.
func writeRecord(w io.Writer, m *record.Map, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}

		return enc.Close()
	}

	data, err := indentJSON(m)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", data)

	return err
}

func indentJSON(m *record.Map) ([]byte, error) {
	compact, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("error encoding result: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("error encoding result: %w", err)
	}

	return buf.Bytes(), nil
}

// materialized copies a record into a *record.Map.
func materialized(rec record.Record) (*record.Map, error) {
	v, err := record.Materialize(rec)
	if err != nil {
		return nil, err
	}

	m, _ := v.(*record.Map)

	return m, nil
}
