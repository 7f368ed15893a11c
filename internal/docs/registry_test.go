package docs

import (
	"context"
	"errors"
	"testing"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	petstoreFile = "../../examples/petstore/swagger.json"
	listingsFile = "../../examples/petstore/listings.yaml"
)

// stubParser serves canned documents keyed by source.
type stubParser struct {
	docs  map[string]*descriptor.Document
	err   error
	loads int
}

func (s *stubParser) Load(_ context.Context, source, _ string) (*descriptor.Document, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.docs[source], nil
}

func (s *stubParser) LoadListings(context.Context, string) (*listing.Index, error) {
	return listing.NewIndex(), nil
}

func (s *stubParser) Parse([]byte) (*descriptor.Document, error) {
	return nil, errors.New("not implemented")
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "/v2/api-docs", Location("/v2/api-docs", ""))
	assert.Equal(t, "/v2/api-docs", Location("/v2/api-docs", config.DefaultGroup))
	assert.Equal(t, "/v2/api-docs?group=admin", Location("/v2/api-docs", "admin"))
	assert.Equal(t, "/v2/api-docs?group=a+b", Location("/v2/api-docs", "a b"))
}

func TestRegistry_Reload(t *testing.T) {
	cfg := &config.Config{
		Server:       config.ServerConfig{DocsPath: "/v2/api-docs"},
		SwaggerFile:  petstoreFile,
		ListingsFile: listingsFile,
		Groups: []config.GroupConfig{
			{Name: "derived", SwaggerFile: petstoreFile},
		},
	}
	r := NewRegistry(parser.NewSwaggerParser(nil), cfg)
	require.NoError(t, r.Reload(context.Background()))

	assert.Equal(t, []string{"default", "derived"}, r.Names())

	def, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, "default", def.Name)
	assert.Equal(t, "/v2/api-docs", def.Location)
	assert.Equal(t, 3, def.Index.Len())

	derived, err := r.Get("derived")
	require.NoError(t, err)
	assert.Equal(t, "/v2/api-docs?group=derived", derived.Location)
	// one derived listing per tag in use
	assert.Equal(t, 3, derived.Index.Len())

	_, err = r.Get("missing")
	assert.True(t, errors.Is(err, ErrUnknownGroup))

	assert.Equal(t, []Resource{
		{Name: "default", Location: "/v2/api-docs", URL: "/v2/api-docs", SwaggerVersion: "2.0"},
		{Name: "derived", Location: "/v2/api-docs?group=derived", URL: "/v2/api-docs?group=derived", SwaggerVersion: "2.0"},
	}, r.Resources())
}

func TestRegistry_ReloadFailureKeepsSnapshots(t *testing.T) {
	doc := &descriptor.Document{Swagger: "2.0", Paths: descriptor.NewMap[*descriptor.PathItem]()}
	stub := &stubParser{docs: map[string]*descriptor.Document{"a.json": doc}}
	cfg := &config.Config{Server: config.ServerConfig{DocsPath: "/docs"}, SwaggerFile: "a.json"}

	r := NewRegistry(stub, cfg)
	require.NoError(t, r.Reload(context.Background()))
	before, err := r.Get("default")
	require.NoError(t, err)

	stub.err = errors.New("boom")
	assert.Error(t, r.Reload(context.Background()))

	after, err := r.Get("default")
	require.NoError(t, err)
	assert.Same(t, before, after)
	assert.Equal(t, 2, stub.loads)
}

func TestNewStaticRegistry(t *testing.T) {
	doc := &descriptor.Document{Swagger: "2.0", Paths: descriptor.NewMap[*descriptor.PathItem]()}
	r := NewStaticRegistry("/docs", &Snapshot{Name: "default", Document: doc}, &Snapshot{Name: "ops", Document: doc})

	assert.Equal(t, []string{"default", "ops"}, r.Names())
	ops, err := r.Get("ops")
	require.NoError(t, err)
	assert.Equal(t, "/docs?group=ops", ops.Location)
	assert.NotNil(t, ops.Index)

	// a static registry has nothing to reload
	assert.NoError(t, r.Reload(context.Background()))
	assert.Len(t, r.Resources(), 2)
}
