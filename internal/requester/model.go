package requester

import (
	"net/http"
	"strings"
)

// Request represents a fully built HTTP request
type Request struct {
	URL         string
	Headers     map[string]string
	HttpRequest *http.Request
}

// Response represents an upstream HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	ct, _, _ := strings.Cut(r.Headers.Get("Content-Type"), ";")
	return strings.TrimSpace(ct)
}
