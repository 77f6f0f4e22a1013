// Package manifest loads detail annotations from a description file instead
// of (or in addition to) //httperr:detail comments.
//
// The file lists types, their variants and the detail entries of each
// variant. Values are Go expression text, exactly as they would be written in
// a comment directive:
//
//	types:
//	  AppError:
//	    NotFound:
//	      status: http.StatusNotFound
//	      message: '"resource not found"'
//
// YAML (and therefore JSON) and TOML are supported, selected by extension.
package manifest

import (
	"errors"
	"fmt"
	"go/token"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Alia5/httperrgen/internal/codegen/annotation"
	"github.com/Alia5/httperrgen/internal/codegen/meta"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Manifest holds detail entries keyed by type and variant name.
type Manifest struct {
	Path  string
	Types map[string]map[string]Detail
}

// Detail maps entry keys to expression text.
type Detail map[string]string

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes data, choosing the format from the extension of path.
func Parse(path string, data []byte) (*Manifest, error) {
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parse manifest %s: %w", path, err)
		}
		raw = tree.ToMap()
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("manifest %s: unsupported format %q (use .yaml, .yml, .json or .toml)", path, filepath.Ext(path))
	}

	m := &Manifest{Path: path, Types: make(map[string]map[string]Detail)}
	if raw == nil {
		return m, nil
	}

	rawTypes, ok := raw["types"]
	if !ok {
		return m, nil
	}
	types, ok := rawTypes.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest %s: types must be a table, got %T", path, rawTypes)
	}

	for typeName, rawVariants := range types {
		variants, ok := rawVariants.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("manifest %s: %s must be a table of variants, got %T", path, typeName, rawVariants)
		}
		details := make(map[string]Detail, len(variants))
		for variantName, rawDetail := range variants {
			entries, ok := rawDetail.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("manifest %s: %s.%s must be a table, got %T", path, typeName, variantName, rawDetail)
			}
			d := make(Detail, len(entries))
			for key, v := range entries {
				text, err := exprText(v)
				if err != nil {
					return nil, fmt.Errorf("manifest %s: %s.%s.%s: %w", path, typeName, variantName, key, err)
				}
				d[key] = text
			}
			details[variantName] = d
		}
		m.Types[typeName] = details
	}
	return m, nil
}

// Apply attaches the manifest entries for enum as extra detail blocks on
// its variants. Variants listed in the manifest must exist.
func (m *Manifest) Apply(enum *meta.Enum) error {
	details, ok := m.Types[enum.Name]
	if !ok {
		return nil
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(details)) {
		v := enum.Variant(name)
		if v == nil {
			errs = append(errs, fmt.Errorf("manifest %s: %s has no variant %s", m.Path, enum.Name, name))
			continue
		}
		payload := details[name].payload()
		if payload == "" {
			continue
		}
		pos := token.Position{Filename: m.Path}
		v.Annotations = append(v.Annotations, annotation.Block{
			Name:       annotation.BlockDetail,
			Payload:    payload,
			Pos:        pos,
			PayloadPos: pos,
		})
	}
	return errors.Join(errs...)
}

// CheckTypes reports every manifest type for which declared is false.
// Types that exist but are not generated in this run are accepted.
func (m *Manifest) CheckTypes(declared func(name string) bool) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(m.Types)) {
		if !declared(name) {
			errs = append(errs, fmt.Errorf("manifest %s: type %s is not declared in the package", m.Path, name))
		}
	}
	return errors.Join(errs...)
}

// payload renders the recognized entries in directive syntax.
func (d Detail) payload() string {
	var parts []string
	for _, k := range annotation.RequiredKeys {
		if v, ok := d[k]; ok {
			parts = append(parts, k+" = "+v)
		}
	}
	return strings.Join(parts, ", ")
}

func exprText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", errors.New("empty value")
		}
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("value must be a number or expression text, got %T", v)
	}
}
