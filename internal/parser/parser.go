package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/requester"
	"go.uber.org/zap"
)

// NewSwaggerParser creates a new SwaggerParser instance. fetcher may be nil
// when only local files are read.
func NewSwaggerParser(fetcher requester.Fetcher) *SwaggerParser {
	return &SwaggerParser{fetcher: fetcher}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// read returns the raw bytes of a file or remote source
func (p *SwaggerParser) read(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return data, nil
	}
	if p.fetcher == nil {
		return nil, fmt.Errorf("cannot fetch %s: no upstream client configured", source)
	}
	resp, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	return resp.Body, nil
}

// Load reads the document at source, applies the adjustments file and
// validates the result.
func (p *SwaggerParser) Load(ctx context.Context, source, adjustmentsFile string) (*descriptor.Document, error) {
	adjuster := NewAdjuster()
	if err := adjuster.Load(adjustmentsFile); err != nil {
		return nil, fmt.Errorf("failed to load adjustments file: %w", err)
	}

	data, err := p.read(ctx, source)
	if err != nil {
		return nil, err
	}

	doc, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	adjuster.Apply(doc)

	if err := Validate(ctx, doc); err != nil {
		logger.Warn("Descriptor does not validate",
			zap.String("source", source),
			zap.Error(err))
	}

	logger.Info("Loaded descriptor",
		zap.String("source", source),
		zap.Int("paths", doc.Paths.Len()),
		zap.Int("definitions", doc.Definitions.Len()))
	return doc, nil
}

// LoadListings reads a listing index file or URL.
func (p *SwaggerParser) LoadListings(ctx context.Context, source string) (*listing.Index, error) {
	data, err := p.read(ctx, source)
	if err != nil {
		return nil, err
	}
	return listing.Parse(data)
}

// Parse checks the version of data and decodes it as a Swagger 2.0 document.
func (p *SwaggerParser) Parse(data []byte) (*descriptor.Document, error) {
	if err := detectVersion(data); err != nil {
		return nil, err
	}
	doc, err := descriptor.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse swagger document: %w", err)
	}
	return doc, nil
}

// detectVersion accepts Swagger 2.0 documents only
func detectVersion(data []byte) error {
	var header struct {
		Swagger string `yaml:"swagger"`
		OpenAPI string `yaml:"openapi"`
	}
	if err := descriptor.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("invalid descriptor document: %w", err)
	}

	switch {
	case header.Swagger == "" && header.OpenAPI == "":
		return ErrMissingVersion
	case header.OpenAPI != "":
		return fmt.Errorf("%w: openapi %s", ErrUnsupportedVersion, header.OpenAPI)
	case header.Swagger != "2.0":
		return fmt.Errorf("%w: swagger %s", ErrUnsupportedVersion, header.Swagger)
	}
	return nil
}
