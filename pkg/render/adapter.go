package render

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-tplhttp/pkg/logging"
	"github.com/goliatone/go-tplhttp/pkg/mimetype"
	"github.com/goliatone/go-tplhttp/pkg/render/template"
	"github.com/goliatone/go-tplhttp/pkg/response"
)

// ErrNilRenderer is returned when no template renderer was supplied.
var ErrNilRenderer = errors.New("render: template renderer is nil")

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger logs render failures at debug level. Errors are still returned
// to the caller untouched.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Adapter renders templates into response bodies and responses. It holds no
// per-call state and is safe for concurrent use when the renderer is.
type Adapter struct {
	renderer template.TemplateRenderer
	logger   *slog.Logger
}

// New wraps renderer.
func New(renderer template.TemplateRenderer, opts ...Option) *Adapter {
	a := &Adapter{
		renderer: renderer,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Renderer returns the wrapped template renderer.
func (a *Adapter) Renderer() template.TemplateRenderer {
	return a.renderer
}

// RenderBody renders name with ctx into a Body. The Body's MIME type comes
// from the template name's extension and stays plain text when the extension
// is missing or unknown. Renderer errors are returned unchanged.
func (a *Adapter) RenderBody(name string, ctx Context) (*response.Body, error) {
	if a == nil || a.renderer == nil {
		return nil, ErrNilRenderer
	}

	rendered, err := a.renderer.RenderTemplate(name, map[string]any(ctx))
	if err != nil {
		a.logger.Debug("template render failed", "template", name, "error", err)
		return nil, err
	}

	body := response.NewBody(rendered)
	if mime, ok := mimetype.FromName(name); ok {
		body.SetMime(mime)
	}
	return body, nil
}

// RenderResponse renders name into a 200 response whose content type is the
// rendered body's MIME type.
func (a *Adapter) RenderResponse(name string, ctx Context) (*response.Response, error) {
	body, err := a.RenderBody(name, ctx)
	if err != nil {
		return nil, err
	}

	res := response.New(http.StatusOK)
	res.SetBody(body)
	return res, nil
}

// RenderBody is a convenience wrapper for New(renderer).RenderBody.
func RenderBody(renderer template.TemplateRenderer, name string, ctx Context) (*response.Body, error) {
	return New(renderer).RenderBody(name, ctx)
}

// RenderResponse is a convenience wrapper for New(renderer).RenderResponse.
func RenderResponse(renderer template.TemplateRenderer, name string, ctx Context) (*response.Response, error) {
	return New(renderer).RenderResponse(name, ctx)
}
