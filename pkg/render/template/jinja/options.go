package jinja

import (
	"io/fs"
	"log/slog"
	"strings"
)

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  []fs.FS
	globs      []string
	extension  string
	autoescape []string
	globalData map[string]any
	strict     bool
	logger     *slog.Logger
}

// DefaultAutoescape lists the name suffixes whose output is HTML-escaped
// unless WithAutoescape says otherwise.
var DefaultAutoescape = []string{".html", ".htm", ".xml"}

// WithBaseDir loads templates from a directory on disk. It is searched before
// any file system passed to WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files. Repeated calls add file systems that are
// searched in order.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = append(cfg.templates, files)
		}
	}
}

// WithGlob compiles every template matching the doublestar patterns at
// construction so syntax errors surface early. Templates outside the globs
// still load on first use.
func WithGlob(patterns ...string) Option {
	return func(cfg *config) {
		for _, pattern := range patterns {
			if trimmed := strings.TrimSpace(pattern); trimmed != "" {
				cfg.globs = append(cfg.globs, trimmed)
			}
		}
	}
}

// WithExtension is appended to template names that carry no extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithAutoescape replaces the suffixes whose output is HTML-escaped. Matching
// is case sensitive. Calling it with no suffixes disables escaping.
func WithAutoescape(suffixes ...string) Option {
	return func(cfg *config) {
		cfg.autoescape = make([]string, 0, len(suffixes))
		for _, suffix := range suffixes {
			if trimmed := strings.TrimSpace(suffix); trimmed != "" {
				cfg.autoescape = append(cfg.autoescape, trimmed)
			}
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithStrictVariables toggles failing on undefined names. It defaults to on.
func WithStrictVariables(strict bool) Option {
	return func(cfg *config) {
		cfg.strict = strict
	}
}

// WithLogger sets the logger used for load and render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
