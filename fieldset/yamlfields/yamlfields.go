// Package yamlfields loads a fieldset.FieldSet from a small YAML document
// of field descriptors, building it with fieldset.NewStatic. The condition
// core treats FieldSet purely as an interface (fieldset.FieldSet) supplied
// by the caller; the cmd tools use this package to read their field set
// from a YAML fixture, which is easier to author and diff than Go literals.
package yamlfields

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/condql/fieldset"
)

// fieldDoc is one field descriptor as it appears in the YAML document.
type fieldDoc struct {
	Name               string `yaml:"name"`
	Required           bool   `yaml:"required,omitempty"`
	AcceptRanges       bool   `yaml:"acceptRanges,omitempty"`
	AcceptCompares     bool   `yaml:"acceptCompares,omitempty"`
	AcceptPatternMatch bool   `yaml:"acceptPatternMatch,omitempty"`
	Options            any    `yaml:"options,omitempty"`
}

// document is the top-level YAML shape: a bare list of field descriptors
// under a `fields` key.
type document struct {
	Fields []fieldDoc `yaml:"fields"`
}

// Load reads a YAML field-set document from path and builds an immutable
// fieldset.FieldSet from it.
func Load(path string) (fieldset.FieldSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlfields: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a fieldset.FieldSet from an in-memory YAML document, the
// same shape Load reads from disk.
func Parse(data []byte) (fieldset.FieldSet, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlfields: failed to parse field set: %w", err)
	}

	configs := make([]fieldset.FieldConfig, 0, len(doc.Fields))
	for _, fd := range doc.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("yamlfields: field descriptor missing a name")
		}
		builder := fieldset.NewFieldBuilder(fd.Name)
		if fd.Required {
			builder = builder.Required()
		}
		if fd.AcceptRanges {
			builder = builder.AcceptRanges()
		}
		if fd.AcceptCompares {
			builder = builder.AcceptCompares()
		}
		if fd.AcceptPatternMatch {
			builder = builder.AcceptPatternMatch()
		}
		if fd.Options != nil {
			builder = builder.WithOptions(fd.Options)
		}
		configs = append(configs, builder.Build())
	}

	return fieldset.NewStatic(configs...), nil
}
