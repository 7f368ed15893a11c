package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			DocsPath:      "/v2/api-docs",
			ResourcesPath: "/swagger-resources",
		},
		UI: config.UIConfig{
			Path:                      "/swagger-ui.html",
			DocExpansion:              "list",
			SupportsModelsExpandDepth: true,
			RedirectParam:             "api-docs",
		},
		SwaggerFile:  "../../../examples/petstore/swagger.json",
		ListingsFile: "../../../examples/petstore/listings.yaml",
		Groups: []config.GroupConfig{
			{Name: "derived", SwaggerFile: "../../../examples/petstore/swagger.json"},
		},
	}
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	registry := docs.NewRegistry(parser.NewSwaggerParser(nil), cfg)
	require.NoError(t, registry.Reload(context.Background()))
	h := NewHandler(cfg, registry, filter.New(filter.DefaultOptions(), zap.NewNop()))
	return h.CreateHTTPHandler(nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func docsURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	if len(q) == 0 {
		return "/v2/api-docs"
	}
	return "/v2/api-docs?" + q.Encode()
}

func TestServeDocs(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]string
		wantPaths []string
		wantDefs  []string
		wantTags  []string
	}{
		{
			name:      "store prefix",
			params:    map[string]string{"path": "/store"},
			wantPaths: []string{"/store/inventory", "/store/order", "/store/order/{orderId}"},
			wantDefs:  []string{"Order"},
			wantTags:  []string{"store"},
		},
		{
			name:      "exact path with api models",
			params:    map[string]string{"path": "/pet/{petId}"},
			wantPaths: []string{"/pet/{petId}"},
			wantDefs:  []string{"ApiResponse", "Category", "Pet", "Tag"},
			wantTags:  []string{"pet"},
		},
		{
			name:      "update resource gets a write variant",
			params:    map[string]string{"path": "/user/{username}"},
			wantPaths: []string{"/user/{username}"},
			wantDefs:  []string{"User", "UserUpdate"},
			wantTags:  []string{"user"},
		},
		{
			name:      "derived group",
			params:    map[string]string{"group": "derived", "path": "/store/order"},
			wantPaths: []string{"/store/order"},
			wantDefs:  []string{"Order"},
			wantTags:  []string{"store"},
		},
		{
			name:      "no match is still a document",
			params:    map[string]string{"path": "/nothing"},
			wantPaths: []string{},
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, docsURL(tt.params))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			doc, err := descriptor.Parse(rec.Body.Bytes())
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaths, append([]string{}, doc.Paths.Keys()...))
			if tt.wantDefs != nil {
				assert.Equal(t, tt.wantDefs, doc.Definitions.Keys())
			}
			if tt.wantTags != nil {
				var tags []string
				for _, tag := range doc.Tags {
					tags = append(tags, tag.Name)
				}
				assert.Equal(t, tt.wantTags, tags)
			}
		})
	}
}

func TestServeDocs_AccessFilter(t *testing.T) {
	rec := get(t, newTestHandler(t), docsURL(map[string]string{"path": "/user/{username}"}))
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := descriptor.Parse(rec.Body.Bytes())
	require.NoError(t, err)

	put := doc.Paths.Value("/user/{username}").Put
	require.NotNil(t, put)
	var names []string
	for _, p := range put.Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"username", "body"}, names)
	assert.Equal(t, "#/definitions/UserUpdate", put.Parameters[1].Schema.Ref)

	variant := doc.Definitions.Value("UserUpdate")
	require.NotNil(t, variant)
	assert.Equal(t, []string{"username", "email", "userStatus"}, variant.Properties.Keys())
	assert.Equal(t, []string{"username"}, variant.Required)
}

func TestServeDocs_Encodings(t *testing.T) {
	h := newTestHandler(t)

	t.Run("yaml", func(t *testing.T) {
		rec := get(t, h, docsURL(map[string]string{"path": "/store", "format": "yaml"}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

		doc, err := descriptor.Parse(rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 3, doc.Paths.Len())
	})

	t.Run("openapi 3", func(t *testing.T) {
		rec := get(t, h, docsURL(map[string]string{"path": "/store", "openapi": "3"}))
		require.Equal(t, http.StatusOK, rec.Code)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
		assert.Contains(t, decoded, "openapi")
		assert.Len(t, decoded["paths"], 3)
	})
}

func TestServeDocs_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "unknown group", method: http.MethodGet, target: docsURL(map[string]string{"group": "missing"}), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "unknown format", method: http.MethodGet, target: docsURL(map[string]string{"format": "xml"}), wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{name: "wrong method", method: http.MethodPost, target: "/v2/api-docs", wantStatus: http.StatusMethodNotAllowed, wantCode: "method_not_allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			assert.NotEmpty(t, body["error_description"])
		})
	}
}

func TestServeDocs_InvalidReference(t *testing.T) {
	doc, err := parser.NewSwaggerParser(nil).Load(context.Background(), "../../../examples/petstore/swagger.json", "")
	require.NoError(t, err)
	doc.Definitions.Delete("User")

	cfg := testConfig()
	registry := docs.NewStaticRegistry(cfg.Server.DocsPath, &docs.Snapshot{Name: config.DefaultGroup, Document: doc})
	h := NewHandler(cfg, registry, filter.New(filter.DefaultOptions(), zap.NewNop())).CreateHTTPHandler(nil)

	rec := get(t, h, docsURL(map[string]string{"path": "/user/{username}"}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "filter_failed")
}

func TestServeResources(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{
			name:   "plain",
			target: "/swagger-resources",
			want:   []string{"/v2/api-docs", "/v2/api-docs?group=derived"},
		},
		{
			name:   "query is propagated",
			target: "/swagger-resources?path=/pet&tags=pet",
			want:   []string{"/v2/api-docs?path=/pet&tags=pet", "/v2/api-docs?group=derived&path=/pet&tags=pet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var resources []docs.Resource
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resources))
			var locations []string
			for _, r := range resources {
				locations = append(locations, r.Location)
				assert.Equal(t, r.Location, r.URL)
				assert.Equal(t, "2.0", r.SwaggerVersion)
			}
			assert.Equal(t, tt.want, locations)
		})
	}
}

func TestPropagateQuery(t *testing.T) {
	assert.Equal(t, "/docs", PropagateQuery("/docs", ""))
	assert.Equal(t, "/docs?a=1", PropagateQuery("/docs", "a=1"))
	assert.Equal(t, "/docs?group=x&a=1", PropagateQuery("/docs?group=x", "a=1"))
}

func TestServeUIConfiguration(t *testing.T) {
	rec := get(t, newTestHandler(t), "/swagger-resources/configuration/ui")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"docExpansion":"list","defaultModelsExpandDepth":-1,"displayRequestDuration":false,"filter":true}`, rec.Body.String())
}

func TestCreateHTTPHandler_MCPFallback(t *testing.T) {
	cfg := testConfig()
	registry := docs.NewStaticRegistry(cfg.Server.DocsPath)
	mcp := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := NewHandler(cfg, registry, filter.New(filter.DefaultOptions(), zap.NewNop())).CreateHTTPHandler(mcp)

	rec := get(t, h, "/mcp")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v2/api-docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
