package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// ToOpenAPI3 converts a Swagger 2.0 descriptor to an OpenAPI 3 document.
func ToOpenAPI3(doc *descriptor.Document) (*openapi3.T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}

	var swagger2Doc openapi2.T
	if err := json.Unmarshal(data, &swagger2Doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI 2.0 spec: %w", err)
	}

	convertedDoc, err := openapi2conv.ToV3(&swagger2Doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert OpenAPI 2.0 to 3.0: %w", err)
	}
	return convertedDoc, nil
}

// Validate converts doc and runs the OpenAPI 3 validator over the result.
func Validate(ctx context.Context, doc *descriptor.Document) error {
	converted, err := ToOpenAPI3(doc)
	if err != nil {
		return err
	}
	return converted.Validate(ctx)
}
