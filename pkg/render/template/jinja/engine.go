package jinja

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nikolalohinski/gonja"
	gonjacfg "github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/exec"

	"github.com/goliatone/go-tplhttp/pkg/logging"
	"github.com/goliatone/go-tplhttp/pkg/render/template"
)

// ErrNoTemplateSource is returned by New when neither a base directory nor a
// file system was configured.
var ErrNoTemplateSource = errors.New("jinja: need to provide either base dir or fs.FS")

// Engine is a template.TemplateRenderer backed by two gonja environments that
// share one loader: one escapes output and serves the autoescape suffixes, the
// other renders everything else verbatim.
type Engine struct {
	mu sync.RWMutex

	loader  *fsLoader
	escaped *gonja.Environment
	raw     *gonja.Environment

	autoescape []string
	extension  string
	globs      []string
	loaded     map[string]struct{}
	logger     *slog.Logger
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine and compiles the templates matched by WithGlob.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		autoescape: slices.Clone(DefaultAutoescape),
		strict:     true,
		logger:     logging.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var sources []fs.FS
	if cfg.baseDir != "" {
		info, err := os.Stat(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("jinja: base dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("jinja: base dir %q is not a directory", cfg.baseDir)
		}
		sources = append(sources, os.DirFS(cfg.baseDir))
	}
	sources = append(sources, cfg.templates...)
	if len(sources) == 0 {
		return nil, ErrNoTemplateSource
	}

	loader := &fsLoader{sources: sources}
	engine := &Engine{
		loader:     loader,
		escaped:    newEnvironment(loader, true, cfg.strict),
		raw:        newEnvironment(loader, false, cfg.strict),
		autoescape: cfg.autoescape,
		extension:  cfg.extension,
		globs:      cfg.globs,
		loaded:     make(map[string]struct{}),
		logger:     cfg.logger,
	}

	for name, fn := range defaultFilters() {
		if err := engine.register(name, fn); err != nil {
			return nil, err
		}
	}
	if len(cfg.globalData) > 0 {
		engine.setGlobals(cfg.globalData)
	}

	if err := engine.loadGlobs(); err != nil {
		return nil, err
	}
	return engine, nil
}

func newEnvironment(loader *fsLoader, autoescape, strict bool) *gonja.Environment {
	cfg := gonjacfg.NewConfig()
	cfg.Autoescape = autoescape
	cfg.StrictUndefined = strict

	env := gonja.NewEnvironment(cfg, loader)
	// Replace never fails for a builtin tag.
	_ = env.Statements.Replace("if", parseIf)
	return env
}

// RenderTemplate renders the named template with data. Output is returned and
// copied into every writer in out. Nothing is written when rendering fails.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	name = e.resolveName(name)

	e.mu.RLock()
	defer e.mu.RUnlock()

	tpl, err := e.environment(name).FromCache(name)
	if err != nil {
		e.logger.Debug("template load failed", "template", name, "error", err)
		return "", fmt.Errorf("jinja: load %q: %w", name, err)
	}

	return e.execute(name, tpl, data, out)
}

// RenderString compiles templateContent and renders it once without
// escaping. The compiled template is not cached.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tpl, err := e.raw.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("jinja: parse inline template: %w", err)
	}
	return e.execute("inline", tpl, data, out)
}

func (e *Engine) execute(name string, tpl *exec.Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", err
	}

	rendered, err := tpl.Execute(ctx)
	if err != nil {
		e.logger.Debug("template render failed", "template", name, "error", err)
		return "", fmt.Errorf("jinja: render %q: %w", name, err)
	}

	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("jinja: write %q: %w", name, err)
		}
	}
	return rendered, nil
}

// RegisterFilter adds a filter to every template. param is the first filter
// argument or nil when the filter is used without one. Names already taken by
// a builtin or an earlier registration are rejected.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("jinja: filter name is required")
	}
	if fn == nil {
		return fmt.Errorf("jinja: filter %q: function is nil", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.register(name, filterFunc(name, fn))
}

func (e *Engine) register(name string, fn exec.FilterFunction) error {
	if e.escaped.Filters.Exists(name) {
		return fmt.Errorf("jinja: filter %q already registered", name)
	}
	for _, env := range []*gonja.Environment{e.escaped, e.raw} {
		if err := env.Filters.Register(name, fn); err != nil {
			return fmt.Errorf("jinja: register filter %q: %w", name, err)
		}
	}
	return nil
}

// GlobalContext merges data into the values visible to every template. data
// must be a map with string keys or a struct.
func (e *Engine) GlobalContext(data any) error {
	values, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.setGlobals(values)
	return nil
}

func (e *Engine) setGlobals(values map[string]any) {
	e.escaped.Globals.Update(values)
	e.raw.Globals.Update(values)
}

// Reload drops every compiled template and recompiles the WithGlob matches.
// Templates outside the globs compile again on next use.
func (e *Engine) Reload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.escaped.CleanCache()
	e.raw.CleanCache()
	e.loaded = make(map[string]struct{})
	return e.loadGlobsLocked()
}

// Templates returns the sorted names compiled by WithGlob.
func (e *Engine) Templates() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.loaded))
	for name := range e.loaded {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (e *Engine) loadGlobs() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadGlobsLocked()
}

func (e *Engine) loadGlobsLocked() error {
	for _, fsys := range e.loader.sources {
		for _, pattern := range e.globs {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return fmt.Errorf("jinja: glob %q: %w", pattern, err)
			}
			for _, name := range matches {
				if _, ok := e.loaded[name]; ok {
					continue
				}
				if _, err := e.environment(name).FromCache(name); err != nil {
					return fmt.Errorf("jinja: compile %q: %w", name, err)
				}
				e.loaded[name] = struct{}{}
			}
		}
	}
	e.logger.Debug("templates compiled", "count", len(e.loaded), "globs", e.globs)
	return nil
}

func (e *Engine) environment(name string) *gonja.Environment {
	for _, suffix := range e.autoescape {
		if strings.HasSuffix(name, suffix) {
			return e.escaped
		}
	}
	return e.raw
}

func (e *Engine) resolveName(name string) string {
	name = strings.TrimSpace(name)
	if e.extension != "" && path.Ext(name) == "" {
		return name + e.extension
	}
	return name
}
