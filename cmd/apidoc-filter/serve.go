package main

import (
	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"github.com/brizzai/apidoc-filter/internal/requester"
	"github.com/brizzai/apidoc-filter/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filtered documentation and the MCP tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			newApp(cfg).Run()
			return nil
		},
	}
	config.InitFlags(cmd.Flags())
	return cmd
}

// newApp wires the server for cfg. Run blocks until SIGINT or SIGTERM.
func newApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		logger.Module,
		requester.Module,
		parser.Module,
		docs.Module,
		filter.Module,
		server.Module,
	)
}
