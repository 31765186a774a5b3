package template

import (
	"io"
)

// TemplateRenderer is the engine seam the render adapter relies on.
// RenderTemplate executes the template stored under name; RenderString
// compiles and executes templateContent once. Both return the output and
// also copy it into any provided writers.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
