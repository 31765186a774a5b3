package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	tplhttp "github.com/goliatone/go-tplhttp"
	"github.com/goliatone/go-tplhttp/pkg/config"
	"github.com/goliatone/go-tplhttp/pkg/logging"
	"github.com/goliatone/go-tplhttp/pkg/render/template/jinja"
)

// loadSettings reads --config (when set) and applies the persistent flags
// the user changed on top of it.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.Changed("dir") {
		cfg.Templates.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("templates") {
		cfg.Templates.Glob, _ = flags.GetStringSlice("templates")
	}
	if flags.Changed("strict") {
		cfg.Templates.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("addr") {
		cfg.Server.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.New(cfg.Logging(out))
}

// newEngine builds the template engine for the templates section, reading
// from Dir when set and from the embedded templates otherwise.
func newEngine(cfg config.Templates, logger *slog.Logger) (*jinja.Engine, error) {
	opts := []jinja.Option{
		jinja.WithStrictVariables(cfg.Strict),
		jinja.WithLogger(logger),
	}
	if cfg.Dir != "" {
		opts = append(opts, jinja.WithBaseDir(cfg.Dir))
	} else {
		opts = append(opts, jinja.WithFS(tplhttp.EmbeddedTemplates()))
	}
	if len(cfg.Glob) > 0 {
		opts = append(opts, jinja.WithGlob(cfg.Glob...))
	}
	if cfg.Extension != "" {
		opts = append(opts, jinja.WithExtension(cfg.Extension))
	}
	if cfg.Autoescape != nil {
		opts = append(opts, jinja.WithAutoescape(cfg.Autoescape...))
	}
	if len(cfg.Globals) > 0 {
		opts = append(opts, jinja.WithGlobalData(cfg.Globals))
	}

	engine, err := jinja.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("tplhttp: template engine: %w", err)
	}
	return engine, nil
}
