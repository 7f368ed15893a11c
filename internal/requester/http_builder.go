package requester

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/config"
	"go.uber.org/fx"
)

// HTTPRequestBuilderParams holds the parameters for creating an HTTPRequestBuilder
type HTTPRequestBuilderParams struct {
	fx.In
	Upstream    *config.UpstreamConfig
	AuthManager AuthManager
}

// HTTPRequestBuilder builds authenticated GET requests against the upstream
type HTTPRequestBuilder struct {
	upstream *config.UpstreamConfig
	authMgr  AuthManager
}

// NewHTTPRequestBuilder creates a new HTTPRequestBuilder
func NewHTTPRequestBuilder(params HTTPRequestBuilderParams) *HTTPRequestBuilder {
	return &HTTPRequestBuilder{
		upstream: params.Upstream,
		authMgr:  params.AuthManager,
	}
}

// BuildRequest builds a GET request for target. Relative targets are
// resolved against the upstream base URL.
func (b *HTTPRequestBuilder) BuildRequest(ctx context.Context, target string, query url.Values) (*Request, error) {
	u, err := b.buildURL(target)
	if err != nil {
		return nil, err
	}
	u = addQueryParams(u, query)

	headers := map[string]string{
		"Accept": "application/json, application/yaml;q=0.9, */*;q=0.8",
	}
	for k, v := range b.upstream.Headers {
		headers[k] = v
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	if b.authMgr != nil {
		if err := b.authMgr.ApplyAuth(httpReq); err != nil {
			return nil, fmt.Errorf("failed to apply authentication: %w", err)
		}
	}

	return &Request{
		URL:         u,
		Headers:     headers,
		HttpRequest: httpReq,
	}, nil
}

func (b *HTTPRequestBuilder) buildURL(target string) (string, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target, nil
	}
	if b.upstream.BaseURL == "" {
		return "", fmt.Errorf("relative document location %q needs upstream.base_url", target)
	}
	return strings.TrimSuffix(b.upstream.BaseURL, "/") + "/" + strings.TrimPrefix(target, "/"), nil
}

func addQueryParams(baseURL string, params url.Values) string {
	if len(params) == 0 {
		return baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	q := u.Query()
	for key, values := range params {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
