package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a catalog file:
//
//	items:
//	  - label: CPU usage
//	    shortcut: c
//	    height: 3
//	    action: cpu
type File struct {
	Items []Entry `json:"items" yaml:"items"`
}

// LoadFile reads entries from a .yaml, .yml or .json file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported catalog file type %q", filepath.Ext(path))
	}
}

// ParseYAML decodes a YAML catalog and validates every entry.
func ParseYAML(data []byte) ([]Entry, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse yaml catalog: %w", err)
	}
	return f.entries()
}

// ParseJSON decodes a JSON catalog and validates every entry.
func ParseJSON(data []byte) ([]Entry, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse json catalog: %w", err)
	}
	return f.entries()
}

func (f File) entries() ([]Entry, error) {
	if f.Items == nil {
		return []Entry{}, nil
	}
	for i := range f.Items {
		if err := f.Items[i].Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		f.Items[i].Position = i
	}
	return f.Items, nil
}
