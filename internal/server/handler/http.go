// Package handler provides the HTTP surface of the documentation filter.
package handler

import (
	"net/http"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultDocsPath      = "/v2/api-docs"
	defaultResourcesPath = "/swagger-resources"
)

// Handler serves filtered documents and the resources listing.
type Handler struct {
	registry *docs.Registry
	engine   *filter.Engine
	server   config.ServerConfig
	redirect *Redirector
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg *config.Config, registry *docs.Registry, engine *filter.Engine) *Handler {
	server := cfg.Server
	if server.DocsPath == "" {
		server.DocsPath = defaultDocsPath
	}
	if server.ResourcesPath == "" {
		server.ResourcesPath = defaultResourcesPath
	}
	return &Handler{
		registry: registry,
		engine:   engine,
		server:   server,
		redirect: NewRedirector(cfg.UI),
	}
}

// CreateHTTPHandler mounts the documentation endpoints next to mcpHandler,
// which receives every other path. mcpHandler may be nil.
func (h *Handler) CreateHTTPHandler(mcpHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(h.server.DocsPath, h.ServeDocs)
	mux.HandleFunc(h.server.ResourcesPath, h.ServeResources)
	mux.HandleFunc(h.server.ResourcesPath+"/configuration/ui", h.ServeUIConfiguration)

	if mcpHandler != nil {
		mux.Handle("/", mcpHandler)
	}

	logger.Info("Registered documentation routes",
		zap.String("docs", h.server.DocsPath),
		zap.String("resources", h.server.ResourcesPath),
		zap.Bool("mcp", mcpHandler != nil),
	)
	return CORSMiddleware(LoggingMiddleware(h.redirect.Middleware(mux)))
}
