package parser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/requester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	petstoreFile    = "../../examples/petstore/swagger.json"
	listingsFile    = "../../examples/petstore/listings.yaml"
	adjustmentsFile = "../../examples/petstore/adjustments.yaml"
)

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "swagger 2.0 json", data: `{"swagger": "2.0"}`},
		{name: "swagger 2.0 yaml", data: "swagger: '2.0'\n"},
		{name: "unquoted yaml version", data: "swagger: 2.0\n"},
		{name: "openapi 3", data: `{"openapi": "3.0.1"}`, wantErr: ErrUnsupportedVersion},
		{name: "swagger 1.2", data: `{"swagger": "1.2"}`, wantErr: ErrUnsupportedVersion},
		{name: "no version", data: `{"info": {}}`, wantErr: ErrMissingVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := detectVersion([]byte(tt.data))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	t.Run("invalid document", func(t *testing.T) {
		assert.Error(t, detectVersion([]byte(`{"swagger": `)))
	})
}

func TestSwaggerParser_Load(t *testing.T) {
	p := NewSwaggerParser(nil)

	doc, err := p.Load(context.Background(), petstoreFile, "")
	require.NoError(t, err)

	assert.Equal(t, "Swagger Petstore", doc.Info.Title)
	assert.Equal(t, []string{
		"/pet",
		"/pet/findByStatus",
		"/pet/{petId}",
		"/store/inventory",
		"/store/order",
		"/store/order/{orderId}",
		"/user/createWithList",
		"/user/{username}",
	}, doc.Paths.Keys())
	assert.Equal(t, []string{"Pet", "Category", "Tag", "Order", "User", "ApiResponse", "Legacy"}, doc.Definitions.Keys())
	assert.True(t, doc.Paths.Value("/pet").Post.Extensions.Has("x-update"))
}

func TestSwaggerParser_LoadWithAdjustments(t *testing.T) {
	doc, err := NewSwaggerParser(nil).Load(context.Background(), petstoreFile, adjustmentsFile)
	require.NoError(t, err)

	get := doc.Paths.Value("/pet/{petId}").Get
	require.NotNil(t, get)
	assert.Equal(t, "Returns a single pet, including its category and tags.", get.Description)
}

func TestSwaggerParser_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	openapi3File := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(openapi3File, []byte("openapi: 3.0.0\ninfo: {title: x, version: '1'}\npaths: {}\n"), 0o600))

	p := NewSwaggerParser(nil)

	_, err := p.Load(context.Background(), filepath.Join(dir, "missing.json"), "")
	assert.Error(t, err)

	_, err = p.Load(context.Background(), openapi3File, "")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = p.Load(context.Background(), "https://example.com/swagger.json", "")
	assert.Error(t, err, "remote sources need a fetcher")
}

func TestSwaggerParser_LoadRemote(t *testing.T) {
	data, err := os.ReadFile(petstoreFile)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/api-docs":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(data)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	upstream := &config.UpstreamConfig{BaseURL: server.URL}
	fetcher := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		Upstream:    upstream,
		AuthManager: requester.NewHTTPAuthManager(upstream),
	})
	p := NewSwaggerParser(fetcher)

	doc, err := p.Load(context.Background(), server.URL+"/v2/api-docs", "")
	require.NoError(t, err)
	assert.Equal(t, 8, doc.Paths.Len())

	_, err = p.Load(context.Background(), server.URL+"/missing", "")
	assert.ErrorIs(t, err, requester.ErrUnexpectedStatus)
}

func TestSwaggerParser_LoadListings(t *testing.T) {
	idx, err := NewSwaggerParser(nil).LoadListings(context.Background(), listingsFile)
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"ApiResponse", "Category", "Pet", "Tag"}, idx.ModelsForPath("/pet/{petId}"))
}

func TestToOpenAPI3(t *testing.T) {
	doc, err := NewSwaggerParser(nil).Load(context.Background(), petstoreFile, "")
	require.NoError(t, err)

	converted, err := ToOpenAPI3(doc)
	require.NoError(t, err)

	assert.Equal(t, "Swagger Petstore", converted.Info.Title)
	assert.NotNil(t, converted.Paths.Find("/pet/{petId}"))
	assert.Equal(t, doc.Paths.Len(), converted.Paths.Len())
	require.NotNil(t, converted.Components)
	assert.Contains(t, converted.Components.Schemas, "Pet")

	post := converted.Paths.Find("/pet").Post
	require.NotNil(t, post)
	require.NotNil(t, post.RequestBody)
	assert.Contains(t, post.RequestBody.Value.Content, "application/json")
}
