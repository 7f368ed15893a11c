package descriptor

import (
	"slices"
	"strings"
)

// DefinitionsPrefix is the JSON pointer prefix of local model references.
const DefinitionsPrefix = "#/definitions/"

// Schema is a Swagger 2.0 schema object. It describes both model definitions
// and their properties.
type Schema struct {
	Ref                  string        `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Format               string        `json:"format,omitempty" yaml:"format,omitempty"`
	Title                string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description          string        `json:"description,omitempty" yaml:"description,omitempty"`
	Default              interface{}   `json:"default,omitempty" yaml:"default,omitempty"`
	MultipleOf           *float64      `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	Maximum              *float64      `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMaximum     bool          `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	Minimum              *float64      `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	ExclusiveMinimum     bool          `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	MaxLength            *uint64       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinLength            *uint64       `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Pattern              string        `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MaxItems             *uint64       `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	MinItems             *uint64       `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	UniqueItems          bool          `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`
	Required             []string      `json:"required,omitempty" yaml:"required,omitempty"`
	Enum                 []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`
	Type                 string        `json:"type,omitempty" yaml:"type,omitempty"`
	Items                *Schema       `json:"items,omitempty" yaml:"items,omitempty"`
	AllOf                []*Schema     `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	Properties           *Schemas      `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties interface{}   `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Discriminator        string        `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	ReadOnly             bool          `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	XML                  interface{}   `json:"xml,omitempty" yaml:"xml,omitempty"`
	ExternalDocs         *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Example              interface{}   `json:"example,omitempty" yaml:"example,omitempty"`
	Extensions           Extensions    `json:"-" yaml:",inline"`
}

// NewRef returns a schema referencing the named definition.
func NewRef(name string) *Schema {
	return &Schema{Ref: RefTo(name)}
}

// RefTo returns the local reference for the named definition. Values that
// already look like references are returned unchanged.
func RefTo(name string) string {
	if strings.HasPrefix(name, "#") || strings.Contains(name, "/") {
		return name
	}
	return DefinitionsPrefix + name
}

// SimpleRef returns the definition name a reference points to, or "" when
// the schema is not a reference.
func (s *Schema) SimpleRef() string {
	if s == nil || s.Ref == "" {
		return ""
	}
	if name, ok := strings.CutPrefix(s.Ref, DefinitionsPrefix); ok {
		return name
	}
	if i := strings.LastIndex(s.Ref, "/"); i >= 0 {
		return s.Ref[i+1:]
	}
	return s.Ref
}

// IsArray reports whether the schema is an array of items.
func (s *Schema) IsArray() bool {
	return s != nil && (s.Type == "array" || (s.Type == "" && s.Items != nil && s.Ref == ""))
}

// Property returns the named property schema.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	return s.Properties.Value(name)
}

// ReadOnlyProperties returns the names of read-only properties in declaration
// order.
func (s *Schema) ReadOnlyProperties() []string {
	var names []string
	s.Properties.Range(func(name string, prop *Schema) bool {
		if prop != nil && prop.ReadOnly {
			names = append(names, name)
		}
		return true
	})
	return names
}

// Refs returns every definition name referenced from this schema, including
// nested items, properties and compositions.
func (s *Schema) Refs() []string {
	var out []string
	s.walk(func(name string) { out = append(out, name) })
	return out
}

func (s *Schema) walk(visit func(string)) {
	if s == nil {
		return
	}
	if name := s.SimpleRef(); name != "" {
		visit(name)
	}
	s.Items.walk(visit)
	for _, sub := range s.AllOf {
		sub.walk(visit)
	}
	s.Properties.Range(func(_ string, prop *Schema) bool {
		prop.walk(visit)
		return true
	})
	if extra, ok := s.AdditionalProperties.(map[string]interface{}); ok {
		if ref, ok := extra["$ref"].(string); ok {
			visit((&Schema{Ref: ref}).SimpleRef())
		}
	}
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Required = slices.Clone(s.Required)
	out.Enum = slices.Clone(s.Enum)
	out.Default = cloneValue(s.Default)
	out.Example = cloneValue(s.Example)
	out.XML = cloneValue(s.XML)
	out.AdditionalProperties = cloneValue(s.AdditionalProperties)
	out.Items = s.Items.Clone()
	if s.AllOf != nil {
		out.AllOf = make([]*Schema, len(s.AllOf))
		for i, sub := range s.AllOf {
			out.AllOf[i] = sub.Clone()
		}
	}
	if s.Properties != nil {
		out.Properties = NewMap[*Schema]()
		s.Properties.Range(func(name string, prop *Schema) bool {
			out.Properties.Set(name, prop.Clone())
			return true
		})
	}
	if s.ExternalDocs != nil {
		docs := *s.ExternalDocs
		out.ExternalDocs = &docs
	}
	out.Extensions = cloneExtensions(s.Extensions)
	return &out
}

func (s Schema) MarshalJSON() ([]byte, error) {
	type plain Schema
	return marshalExtended(plain(s), s.Extensions)
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	type plain Schema
	return Unmarshal(data, (*plain)(s))
}
