// Package server serves filtered documentation over HTTP and exposes the
// filter as MCP tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/server/handler"
	"github.com/brizzai/apidoc-filter/internal/server/tool"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second

	mcpPath = "/mcp"
)

// Server serves the documentation endpoints and the MCP tools in one of the
// supported modes (HTTP, SSE or STDIO).
type Server struct {
	config  *config.Config
	mcp     *mcpserver.MCPServer
	handler *handler.Handler
}

// NewServer creates a server for the loaded documentation groups.
func NewServer(cfg *config.Config, registry *docs.Registry, engine *filter.Engine) *Server {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	if registry == nil {
		logger.Fatal("Registry cannot be nil")
	}
	if engine == nil {
		logger.Fatal("Filter engine cannot be nil")
	}

	mcpServer := mcpserver.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
	)
	tool.NewHandler(registry, engine).Register(mcpServer)

	return &Server{
		config:  cfg,
		mcp:     mcpServer,
		handler: handler.NewHandler(cfg, registry, engine),
	}
}

func (s *Server) address() string {
	return fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
}

// ServeSSE serves the documentation endpoints with the MCP SSE transport
// mounted at /sse and /message.
func (s *Server) ServeSSE(ctx context.Context) error {
	logger.Info("Starting SSE server")

	sseServer := mcpserver.NewSSEServer(
		s.mcp,
		mcpserver.WithBaseURL(fmt.Sprintf("http://%s", s.address())),
	)

	return s.serveHTTP(ctx, sseServer, "SSE")
}

// ServeHTTP serves the documentation endpoints with the MCP streamable HTTP
// transport mounted at /mcp.
func (s *Server) ServeHTTP(ctx context.Context) error {
	logger.Info("Starting HTTP server")

	mux := http.NewServeMux()
	mux.Handle(mcpPath, mcpserver.NewStreamableHTTPServer(s.mcp))
	return s.serveHTTP(ctx, mux, "HTTP")
}

func (s *Server) serveHTTP(ctx context.Context, mcpHandler http.Handler, mode string) error {
	addr := s.address()
	server := &http.Server{
		Addr:              addr,
		Handler:           s.handler.CreateHTTPHandler(mcpHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server",
			zap.String("mode", mode),
			zap.String("address", addr),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server",
			zap.String("mode", mode),
			zap.Duration("timeout", shutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// ServeSTDIO serves the MCP tools over standard I/O. The documentation
// endpoints are not available in this mode.
func (s *Server) ServeSTDIO(ctx context.Context) error {
	logger.Info("Starting STDIO server")
	stdioServer := mcpserver.NewStdioServer(s.mcp)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// Start starts the server in the configured mode and blocks until ctx is
// done or the server fails.
func (s *Server) Start(ctx context.Context) error {
	logger.Info("Starting server",
		zap.String("mode", string(s.config.Server.Mode)),
		zap.String("version", s.config.Server.Version),
	)

	switch s.config.Server.Mode {
	case config.ServerModeSSE:
		return s.ServeSSE(ctx)
	case config.ServerModeHTTP:
		return s.ServeHTTP(ctx)
	case config.ServerModeSTDIO:
		return s.ServeSTDIO(ctx)
	default:
		return fmt.Errorf("unsupported server mode: %s", s.config.Server.Mode)
	}
}

// Module provides the server and runs it for the lifetime of the application
var Module = fx.Module("server",
	fx.Provide(
		NewServer,
	),
	fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, s *Server) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					defer close(done)
					if err := s.Start(ctx); err != nil {
						logger.Error("Server stopped", zap.Error(err))
						_ = shutdowner.Shutdown(fx.ExitCode(1))
					}
				}()
				return nil
			},
			OnStop: func(stopCtx context.Context) error {
				cancel()
				select {
				case <-done:
					return nil
				case <-stopCtx.Done():
					return stopCtx.Err()
				}
			},
		})
	}),
)
