package schema

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// FieldType is the JSON type a field must carry.
type FieldType string

// Supported field types.
const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

func (t FieldType) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeObject, TypeArray:
		return true
	}
	return false
}

// Field describes one named value in a JSON object.
type Field struct {
	// Name is the JSON key. It is ignored for array element descriptors.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Type is the JSON type the value must have.
	Type FieldType `yaml:"type" json:"type"`

	// Description is passed to the model in the format instructions.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Required fields must be present and non-null. Required strings must
	// also be non-blank.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`

	// Fields lists the properties of an object field.
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`

	// Items describes the elements of an array field.
	Items *Field `yaml:"items,omitempty" json:"items,omitempty"`
}

// Schema is the top-level descriptor. The payload it describes is always a
// JSON object.
type Schema struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field `yaml:"fields" json:"fields"`
}

// Check reports whether the descriptor is well formed: every object field
// has uniquely named properties, every array declares its items and every
// type is known.
func (s *Schema) Check() error {
	if s == nil {
		return fmt.Errorf("%w: schema is nil", ErrInvalidSchema)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: schema name is required", ErrInvalidSchema)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: schema %q has no fields", ErrInvalidSchema, s.Name)
	}
	return checkFields(s.Fields, s.Name)
}

func checkFields(fields []Field, parent string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field without a name in %s", ErrInvalidSchema, parent)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q in %s", ErrInvalidSchema, f.Name, parent)
		}
		seen[f.Name] = struct{}{}

		if err := checkField(f, parent+"."+f.Name); err != nil {
			return err
		}
	}
	return nil
}

func checkField(f Field, path string) error {
	if !f.Type.valid() {
		return fmt.Errorf("%w: unknown type %q at %s", ErrInvalidSchema, f.Type, path)
	}

	switch f.Type {
	case TypeObject:
		if len(f.Fields) > 0 {
			return checkFields(f.Fields, path)
		}
	case TypeArray:
		if f.Items == nil {
			return fmt.Errorf("%w: array %s has no items descriptor", ErrInvalidSchema, path)
		}
		return checkField(*f.Items, path+"[]")
	}
	return nil
}

// Parse decodes a YAML schema descriptor and checks it.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a YAML schema descriptor from path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", path, err)
	}
	return s, nil
}

// Fallback returns the empty object used when model output cannot be
// parsed. Required fields get empty values: the first required top-level
// string carries title, arrays are empty, objects recurse, numbers are zero
// and booleans false. Optional fields are left out. For a title plus list
// schema this yields {title: <title>, <list>: []}.
func (s *Schema) Fallback(title string) map[string]any {
	out := make(map[string]any)
	titled := false
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if f.Type == TypeString && !titled {
			out[f.Name] = title
			titled = true
			continue
		}
		out[f.Name] = zeroValue(f)
	}
	return out
}

func zeroValue(f Field) any {
	switch f.Type {
	case TypeString:
		return ""
	case TypeInteger, TypeNumber:
		return 0
	case TypeBoolean:
		return false
	case TypeArray:
		return []any{}
	case TypeObject:
		obj := make(map[string]any)
		for _, sub := range f.Fields {
			if sub.Required {
				obj[sub.Name] = zeroValue(sub)
			}
		}
		return obj
	}
	return nil
}
