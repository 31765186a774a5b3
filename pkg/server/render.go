package server

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-tplhttp/pkg/render"
	"github.com/goliatone/go-tplhttp/pkg/response"
)

// ContextFunc builds the render context for a request.
type ContextFunc func(r *http.Request) (render.Context, error)

// RenderEndpoint returns an Endpoint that renders templateName with the
// context built by contextFn (an empty context when nil).
func RenderEndpoint(adapter *render.Adapter, templateName string, contextFn ContextFunc) Endpoint {
	return func(r *http.Request) (*response.Response, error) {
		ctx := render.NewContext()
		if contextFn != nil {
			built, err := contextFn(r)
			if err != nil {
				return nil, err
			}
			ctx = built
		}
		return adapter.RenderResponse(templateName, ctx)
	}
}

// PathParams builds a context holding the named path values of the request.
// A missing value is a 400 error.
func PathParams(names ...string) ContextFunc {
	return func(r *http.Request) (render.Context, error) {
		ctx := make(render.Context, len(names))
		for _, name := range names {
			value, err := Param(r, name)
			if err != nil {
				return nil, err
			}
			ctx.Insert(name, value)
		}
		return ctx, nil
	}
}

// HelloRoutes registers GET {basePath}/{name} rendering templateName with
// {"name": <path value>}.
func HelloRoutes(mux Mux, basePath string, adapter *render.Adapter, templateName string) (string, error) {
	if adapter == nil {
		return "", fmt.Errorf("server: missing render adapter")
	}
	return Handle(mux, http.MethodGet, basePath, "/{name}", RenderEndpoint(adapter, templateName, PathParams("name")))
}
