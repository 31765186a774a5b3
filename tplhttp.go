// Package tplhttp renders Jinja templates into net/http responses.
//
// The root package re-exports the pieces most callers need; the pkg/
// sub-packages hold the implementations.
//
//	engine, err := tplhttp.NewEngine(jinja.WithBaseDir("templates"))
//	...
//	mux.Handle("GET /{name}", server.Endpoint(func(r *http.Request) (*response.Response, error) {
//		return tplhttp.RenderResponse(engine, "hello.html",
//			tplhttp.NewContext(tplhttp.KV("name", r.PathValue("name"))))
//	}))
package tplhttp

import (
	"github.com/goliatone/go-tplhttp/pkg/render"
	"github.com/goliatone/go-tplhttp/pkg/render/template"
	"github.com/goliatone/go-tplhttp/pkg/render/template/jinja"
	"github.com/goliatone/go-tplhttp/pkg/response"
)

// Context is the variable map handed to templates.
type Context = render.Context

// Pair is one key/value entry for NewContext.
type Pair = render.Pair

// TemplateRenderer is the engine contract RenderBody and RenderResponse use.
type TemplateRenderer = template.TemplateRenderer

// KV builds a Pair.
func KV(key string, value any) Pair {
	return render.KV(key, value)
}

// NewContext builds a Context from pairs; later pairs win on duplicate keys.
func NewContext(pairs ...Pair) Context {
	return render.NewContext(pairs...)
}

// NewEngine builds the gonja-backed template engine.
func NewEngine(options ...jinja.Option) (*jinja.Engine, error) {
	return jinja.New(options...)
}

// NewDefaultEngine builds an engine over EmbeddedTemplates, with any extra
// options applied after the embedded source.
func NewDefaultEngine(options ...jinja.Option) (*jinja.Engine, error) {
	opts := append([]jinja.Option{jinja.WithFS(EmbeddedTemplates())}, options...)
	return jinja.New(opts...)
}

// RenderBody renders name into a Body whose MIME type follows the name's
// extension.
func RenderBody(renderer TemplateRenderer, name string, ctx Context) (*response.Body, error) {
	return render.RenderBody(renderer, name, ctx)
}

// RenderResponse renders name into a 200 Response.
func RenderResponse(renderer TemplateRenderer, name string, ctx Context) (*response.Response, error) {
	return render.RenderResponse(renderer, name, ctx)
}
