package requester

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrUnexpectedStatus is returned when the upstream answers with a non 2xx status.
var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// Fetcher retrieves remote descriptor documents.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*Response, error)
}

// HTTPRequester builds and executes upstream requests
type HTTPRequester struct {
	client  *http.Client
	builder *HTTPRequestBuilder
}

type HTTPRequesterParams struct {
	fx.In

	Upstream    *config.UpstreamConfig
	AuthManager AuthManager
}

// NewHTTPRequester creates a new HTTPRequester. A zero timeout falls back to 30 seconds.
func NewHTTPRequester(params HTTPRequesterParams) *HTTPRequester {
	timeout := params.Upstream.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPRequester{
		client: &http.Client{
			Timeout: timeout,
		},
		builder: NewHTTPRequestBuilder(HTTPRequestBuilderParams{
			Upstream:    params.Upstream,
			AuthManager: params.AuthManager,
		}),
	}
}

// SetTimeout sets the timeout for the HTTP client
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// Fetch downloads target and returns the response when the upstream answers 2xx.
func (r *HTTPRequester) Fetch(ctx context.Context, target string) (*Response, error) {
	return r.FetchWithQuery(ctx, target, nil)
}

// FetchWithQuery is Fetch with extra query parameters.
func (r *HTTPRequester) FetchWithQuery(ctx context.Context, target string, query url.Values) (*Response, error) {
	req, err := r.builder.BuildRequest(ctx, target, query)
	if err != nil {
		return nil, err
	}
	logger.Info("Fetching document", zap.String("url", req.URL))

	resp, err := r.execute(req)
	if err != nil {
		logger.Error("failed to execute request", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, req.URL, resp.StatusCode)
	}
	return resp, nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(req *Request) (resp *Response, err error) {
	httpResp, err := r.client.Do(req.HttpRequest)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       bodyBytes,
		Headers:    httpResp.Header,
	}, nil
}
