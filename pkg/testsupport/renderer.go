package testsupport

import (
	"errors"
	"io"
	"sync"

	"github.com/goliatone/go-tplhttp/pkg/render/template"
)

// RenderCall records one render invocation on a StubRenderer.
type RenderCall struct {
	Method string
	Name   string
	Data   any
}

// StubRenderer is a template.TemplateRenderer returning canned output. Err,
// when set, is returned from every render call.
type StubRenderer struct {
	Output string
	Err    error

	mu    sync.Mutex
	calls []RenderCall
}

var _ template.TemplateRenderer = (*StubRenderer)(nil)

func (s *StubRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	return s.record("RenderTemplate", name, data, out)
}

func (s *StubRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	return s.record("RenderString", content, data, out)
}

func (s *StubRenderer) record(method, name string, data any, out []io.Writer) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, RenderCall{Method: method, Name: name, Data: data})
	s.mu.Unlock()

	if s.Err != nil {
		return "", s.Err
	}
	for _, w := range out {
		if _, err := io.WriteString(w, s.Output); err != nil {
			return "", err
		}
	}
	return s.Output, nil
}

func (s *StubRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return errors.New("testsupport: stub renderer does not support filters")
}

func (s *StubRenderer) GlobalContext(any) error {
	return nil
}

// Calls returns a copy of the recorded render calls.
func (s *StubRenderer) Calls() []RenderCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RenderCall(nil), s.calls...)
}
