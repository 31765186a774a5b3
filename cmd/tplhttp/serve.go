package main

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-tplhttp/pkg/render"
	"github.com/goliatone/go-tplhttp/pkg/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /{name} rendered with the hello template",
		Long: `Start an HTTP server that answers GET /{name} by rendering the configured
hello template (templates.hello, default hello.html) with {"name": name}.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			engine, err := newEngine(cfg.Templates, logger)
			if err != nil {
				return err
			}
			adapter := render.New(engine, render.WithLogger(logger))

			mux := http.NewServeMux()
			pattern, err := server.HelloRoutes(mux, "/", adapter, cfg.Templates.Hello)
			if err != nil {
				return err
			}
			logger.Debug("route registered", "pattern", pattern, "template", cfg.Templates.Hello)

			srv := server.New(server.Config{
				Addr:              cfg.Server.Addr,
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   cfg.Server.ShutdownTimeout,
			}, mux, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	return cmd
}
