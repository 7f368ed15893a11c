package handler

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultUIPath        = "/swagger-ui.html"
	defaultRedirectParam = "api-docs"
	defaultDocExpansion  = "list"
)

// Redirector sends browsers that ask for the documentation UI of an endpoint
// over to that UI.
type Redirector struct {
	uiPath            string
	baseURL           string
	param             string
	docExpansion      string
	modelsExpandDepth bool
}

// NewRedirector creates a redirector for the configured UI.
func NewRedirector(cfg config.UIConfig) *Redirector {
	r := &Redirector{
		uiPath:            cfg.Path,
		baseURL:           strings.TrimSuffix(cfg.BaseURL, "/"),
		param:             cfg.RedirectParam,
		docExpansion:      cfg.DocExpansion,
		modelsExpandDepth: cfg.SupportsModelsExpandDepth,
	}
	if r.uiPath == "" {
		r.uiPath = defaultUIPath
	}
	if r.param == "" {
		r.param = defaultRedirectParam
	}
	if r.docExpansion == "" {
		r.docExpansion = defaultDocExpansion
	}
	return r
}

// Middleware redirects requests carrying a set redirect parameter and passes
// everything else to next.
func (rd *Redirector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rd.Triggered(r) {
			next.ServeHTTP(w, r)
			return
		}
		location := rd.Location(r)
		logger.Debug("Redirecting to documentation UI",
			zap.String("path", r.URL.Path),
			zap.String("location", location),
		)
		http.Redirect(w, r, location, http.StatusFound)
	})
}

// Triggered reports whether the redirect parameter of r is true or "1".
func (rd *Redirector) Triggered(r *http.Request) bool {
	value := r.URL.Query().Get(rd.param)
	return strings.EqualFold(value, "true") || value == "1"
}

// Location builds the UI location for r. A non-empty query is forwarded with
// the redirect parameter neutralized, followed by the default display options
// it does not already set.
func (rd *Redirector) Location(r *http.Request) string {
	var b strings.Builder
	b.WriteString(rd.BaseURL(r))
	b.WriteString(rd.uiPath)
	b.WriteString("?path=")
	b.WriteString(r.URL.EscapedPath())

	query := r.URL.RawQuery
	if query == "" {
		return b.String()
	}

	if one := rd.param + "=1"; strings.Contains(query, one) {
		query = strings.ReplaceAll(query, one, "1=1")
	} else {
		query = strings.ReplaceAll(query, rd.param+"=true", "1=1")
	}
	b.WriteString("&")
	b.WriteString(query)

	if !strings.Contains(query, "docExpansion") {
		b.WriteString("&docExpansion=")
		b.WriteString(rd.docExpansion)
	}
	if rd.modelsExpandDepth && !strings.Contains(query, "defaultModelsExpandDepth") {
		b.WriteString("&defaultModelsExpandDepth=-1")
	}
	return b.String()
}

// BaseURL returns the configured base URL, or the scheme and host of r with
// the scheme's default port left out.
func (rd *Redirector) BaseURL(r *http.Request) string {
	if rd.baseURL != "" {
		return rd.baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	host, port, err := net.SplitHostPort(r.Host)
	if err != nil {
		return scheme + "://" + r.Host
	}
	if p, err := strconv.Atoi(port); err == nil && ((scheme == "http" && p == 80) || (scheme == "https" && p == 443)) {
		return scheme + "://" + host
	}
	return scheme + "://" + net.JoinHostPort(host, port)
}
