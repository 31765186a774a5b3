// Package template defines the renderer-agnostic template engine contract.
// Concrete engines live in sub-packages; jinja provides the gonja-backed
// implementation.
package template
