package jinja

import (
	"fmt"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nikolalohinski/gonja/exec"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func ugcPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

func defaultFilters() map[string]exec.FilterFunction {
	return map[string]exec.FilterFunction{
		"sanitize": filterSanitize,
		"markdown": filterMarkdown,
	}
}

// filterSanitize strips markup outside the user generated content policy and
// marks the result safe.
func filterSanitize(_ *exec.Evaluator, in *exec.Value, _ *exec.VarArgs) *exec.Value {
	if in.IsError() {
		return in
	}
	if in.IsNil() {
		return exec.AsSafeValue("")
	}
	return exec.AsSafeValue(ugcPolicy().Sanitize(in.String()))
}

// filterMarkdown renders markdown to sanitized HTML.
func filterMarkdown(_ *exec.Evaluator, in *exec.Value, _ *exec.VarArgs) *exec.Value {
	if in.IsError() {
		return in
	}
	if in.IsNil() {
		return exec.AsSafeValue("")
	}
	html := markdown.ToHTML([]byte(in.String()), nil, nil)
	return exec.AsSafeValue(string(ugcPolicy().SanitizeBytes(html)))
}

func filterFunc(name string, fn func(input any, param any) (any, error)) exec.FilterFunction {
	return func(_ *exec.Evaluator, in *exec.Value, params *exec.VarArgs) *exec.Value {
		if in.IsError() {
			return in
		}
		var param any
		if len(params.Args) > 0 {
			param = params.Args[0].Interface()
		}
		out, err := fn(in.Interface(), param)
		if err != nil {
			return exec.AsValue(fmt.Errorf("filter %s: %w", name, err))
		}
		return exec.AsValue(out)
	}
}
