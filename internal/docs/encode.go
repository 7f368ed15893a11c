package docs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding of a served document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a format name onto a Format. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the media type of f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Encode renders doc in format. With openAPI3 set the document is converted
// to OpenAPI 3 first.
func Encode(doc *descriptor.Document, format Format, openAPI3 bool) ([]byte, error) {
	if !openAPI3 {
		if format == FormatYAML {
			return doc.ToYAML()
		}
		return json.Marshal(doc)
	}

	converted, err := parser.ToOpenAPI3(doc)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(converted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode openapi 3 document: %w", err)
	}
	if format != FormatYAML {
		return data, nil
	}

	// a yaml node keeps the key order of the json encoding
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return yaml.Marshal(&node)
}

// Filter runs req against the snapshot of group.
func (r *Registry) Filter(e *filter.Engine, group string, req filter.Request) (*filter.Result, error) {
	snapshot, err := r.Get(group)
	if err != nil {
		return nil, err
	}
	return e.Filter(req, snapshot.Document, snapshot.Index)
}
