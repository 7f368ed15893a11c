package parser

import (
	"context"
	"errors"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"github.com/brizzai/apidoc-filter/internal/requester"
)

var (
	// ErrUnsupportedVersion is returned for documents that are not Swagger 2.0.
	ErrUnsupportedVersion = errors.New("unsupported descriptor version")
	// ErrMissingVersion is returned when neither swagger nor openapi is set.
	ErrMissingVersion = errors.New("document is missing 'swagger' or 'openapi' version field")
)

// Parser loads descriptor documents and listing indexes
type Parser interface {
	// Load reads, decodes and adjusts the document at source, a file path or URL
	Load(ctx context.Context, source, adjustmentsFile string) (*descriptor.Document, error)
	// LoadListings reads the listing index at source, a file path or URL
	LoadListings(ctx context.Context, source string) (*listing.Index, error)
	// Parse decodes a Swagger 2.0 document
	Parse(data []byte) (*descriptor.Document, error)
}

// SwaggerParser parses Swagger 2.0 descriptors. Remote sources go through fetcher.
type SwaggerParser struct {
	fetcher requester.Fetcher
}
