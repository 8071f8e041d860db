// Package typemap loads the user-facing type map: schema type overrides, the
// union resolution table and emission settings, from JSON, YAML or TOML.
package typemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/lspgen/internal/codegen/generator/cpp"
	"github.com/Alia5/lspgen/internal/codegen/types"
)

// ErrUnsupportedFormat is returned for type map files of unknown format.
var ErrUnsupportedFormat = errors.New("unsupported type map format")

// Entry is one override. Nil fields leave the resolved type untouched.
type Entry struct {
	Name     *string `json:"name,omitempty" yaml:"name,omitempty"`
	Array    *bool   `json:"array,omitempty" yaml:"array,omitempty"`
	Optional *bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Nullable *bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	// Include is the include directive operand, e.g. `"uri.hh"` or `<string>`;
	// an empty string means no include.
	Include *string `json:"include,omitempty" yaml:"include,omitempty"`
	Binding string  `json:"binding,omitempty" yaml:"binding,omitempty"`
}

// File is a type map document.
type File struct {
	Namespace              []string          `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	StringLiteralConstants *bool             `json:"stringLiteralConstants,omitempty" yaml:"stringLiteralConstants,omitempty"`
	Overrides              map[string]Entry  `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Unions                 map[string]string `json:"unions,omitempty" yaml:"unions,omitempty"`
}

func rename(name, include string) Entry {
	return Entry{Name: &name, Include: &include}
}

// Default returns the built-in type map.
func Default() *File {
	uri := rename("uri", `"uri.hh"`)
	uri.Binding = cpp.StringIDBinding.Name
	dynamic := rename("nlohmann::json", `"nlohmann/json.hpp"`)
	return &File{
		Namespace: cpp.DefaultNamespace(),
		Overrides: map[string]Entry{
			"uinteger":    rename("unsigned int", ""),
			"integer":     rename("int", ""),
			"decimal":     rename("double", ""),
			"boolean":     rename("bool", ""),
			"string":      rename("std::string", "<string>"),
			"DocumentUri": uri,
			"URI":         uri,
			types.Dynamic: dynamic,
			"LSPAny":      dynamic,
			"LSPArray":    dynamic,
		},
		Unions: map[string]string{},
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads a type map file; the format follows the extension.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type map: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse type map %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a type map in the given format.
func Parse(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case "toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, err
		}
		// go through the JSON shape so tags are shared with the other formats
		raw, err := json.Marshal(tree.ToMap())
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &f, nil
}

// Merge overlays o onto f. Override entries and union entries replace
// entries of the same key; other settings replace when set.
func (f *File) Merge(o *File) {
	if o == nil {
		return
	}
	if o.Namespace != nil {
		f.Namespace = append([]string(nil), o.Namespace...)
	}
	if o.StringLiteralConstants != nil {
		v := *o.StringLiteralConstants
		f.StringLiteralConstants = &v
	}
	if len(o.Overrides) > 0 && f.Overrides == nil {
		f.Overrides = make(map[string]Entry, len(o.Overrides))
	}
	for k, v := range o.Overrides {
		f.Overrides[k] = v
	}
	if len(o.Unions) > 0 && f.Unions == nil {
		f.Unions = make(map[string]string, len(o.Unions))
	}
	for k, v := range o.Unions {
		f.Unions[k] = v
	}
}

// OverrideTable converts the entries, resolving binding names.
func (f *File) OverrideTable() (types.OverrideTable, error) {
	table := make(types.OverrideTable, len(f.Overrides))
	keys := make([]string, 0, len(f.Overrides))
	for k := range f.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		e := f.Overrides[k]
		o := types.Override{
			Name:       e.Name,
			Array:      e.Array,
			Optional:   e.Optional,
			Nullable:   e.Nullable,
			Dependency: e.Include,
		}
		if e.Binding != "" {
			b, err := cpp.LookupBinding(e.Binding)
			if err != nil {
				return nil, fmt.Errorf("override %s: %w", k, err)
			}
			o = o.WithBinding(b)
		}
		table[k] = o
	}
	return table, nil
}

// Marshal encodes f in the given format.
func (f *File) Marshal(format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(f, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(f)
	case "toml":
		raw, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return toml.Marshal(m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
