// Package descriptor models a Swagger 2.0 API descriptor document.
//
// Paths, definitions and properties are insertion ordered. Every container
// type has clone helpers so filtering passes can work on private copies while
// the loaded document stays shared and read-only.
package descriptor

import (
	"bytes"
	"slices"

	"gopkg.in/yaml.v3"
)

// Document is the root of a Swagger 2.0 descriptor.
type Document struct {
	Swagger             string                 `json:"swagger" yaml:"swagger"`
	Info                *Info                  `json:"info,omitempty" yaml:"info,omitempty"`
	Host                string                 `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath            string                 `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Schemes             []string               `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Consumes            []string               `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces            []string               `json:"produces,omitempty" yaml:"produces,omitempty"`
	Tags                []*Tag                 `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths               *Paths                 `json:"paths" yaml:"paths"`
	Definitions         *Schemas               `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Parameters          map[string]*Parameter  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses           map[string]*Response   `json:"responses,omitempty" yaml:"responses,omitempty"`
	SecurityDefinitions map[string]interface{} `json:"securityDefinitions,omitempty" yaml:"securityDefinitions,omitempty"`
	Security            []map[string][]string  `json:"security,omitempty" yaml:"security,omitempty"`
	ExternalDocs        *ExternalDocs          `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Extensions          Extensions             `json:"-" yaml:",inline"`
}

// Info is the API metadata block.
type Info struct {
	Title          string                 `json:"title" yaml:"title"`
	Description    string                 `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string                 `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Version        string                 `json:"version" yaml:"version"`
	Contact        map[string]interface{} `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        map[string]interface{} `json:"license,omitempty" yaml:"license,omitempty"`
}

// Tag declares a tag used to group operations.
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// ExternalDocs points at additional documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// Response describes a single operation response.
type Response struct {
	Description string                 `json:"description" yaml:"description"`
	Schema      *Schema                `json:"schema,omitempty" yaml:"schema,omitempty"`
	Headers     map[string]interface{} `json:"headers,omitempty" yaml:"headers,omitempty"`
	Examples    map[string]interface{} `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Parse decodes a JSON or YAML encoded document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Paths == nil {
		doc.Paths = NewMap[*PathItem]()
	}
	if doc.Definitions == nil {
		doc.Definitions = NewMap[*Schema]()
	}
	return &doc, nil
}

// Tag returns the declared tag with the given name.
func (d *Document) Tag(name string) *Tag {
	for _, tag := range d.Tags {
		if tag != nil && tag.Name == name {
			return tag
		}
	}
	return nil
}

// Definition returns the named model definition.
func (d *Document) Definition(name string) *Schema {
	return d.Definitions.Value(name)
}

// ShallowCopy returns a document with its own Paths, Definitions and Tags
// containers. The path items, operations and schemas they hold are shared.
func (d *Document) ShallowCopy() *Document {
	out := *d
	out.Paths = d.Paths.Clone()
	if out.Paths == nil {
		out.Paths = NewMap[*PathItem]()
	}
	out.Definitions = d.Definitions.Clone()
	if out.Definitions == nil {
		out.Definitions = NewMap[*Schema]()
	}
	out.Tags = slices.Clone(d.Tags)
	return &out
}

// Operations calls fn for each operation of every path, in path order and
// fixed method order.
func (d *Document) Operations(fn func(path, method string, op *Operation)) {
	d.Paths.Range(func(path string, item *PathItem) bool {
		for _, method := range Methods {
			if op := item.Operation(method); op != nil {
				fn(path, method, op)
			}
		}
		return true
	})
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return marshalExtended(plain(d), d.Extensions)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	return Unmarshal(data, (*plain)(d))
}

// ToYAML encodes the document as YAML.
func (d *Document) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
