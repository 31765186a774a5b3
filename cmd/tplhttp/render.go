package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tplhttp/pkg/render"
)

type renderOptions struct {
	set         []string
	ask         []string
	interactive bool
	headers     bool
}

func newRenderCmd(prompts prompter) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template to stdout",
		Long: `Render a template with values given by --set key=value and print the body.

Values are decoded as YAML scalars, so --set count=3 is a number and
--set draft=true a boolean. With --interactive, every --ask key that was
not set is prompted for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts, prompts)
		},
	}
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "context value as key=value (repeatable)")
	cmd.Flags().StringSliceVar(&opts.ask, "ask", nil, "context keys to prompt for with --interactive")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for --ask keys that were not set")
	cmd.Flags().BoolVar(&opts.headers, "headers", false, "print the Content-Type line before the body")
	return cmd
}

func runRender(cmd *cobra.Command, name string, opts *renderOptions, prompts prompter) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	ctx, err := parseSet(opts.set)
	if err != nil {
		return err
	}

	if opts.interactive {
		for _, key := range opts.ask {
			if _, ok := ctx.Get(key); ok {
				continue
			}
			value, err := prompts.Ask(cmd.Context(), key)
			if err != nil {
				return err
			}
			ctx.Insert(key, value)
		}
	}

	engine, err := newEngine(cfg.Templates, logger)
	if err != nil {
		return err
	}

	body, err := render.New(engine, render.WithLogger(logger)).RenderBody(name, ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.headers {
		if _, err := fmt.Fprintf(out, "Content-Type: %s\n\n", body.Mime()); err != nil {
			return err
		}
	}
	_, err = out.Write(body.Bytes())
	return err
}

// parseSet turns key=value flags into a context; later keys win.
func parseSet(values []string) (render.Context, error) {
	ctx := render.NewContext()
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("tplhttp: invalid --set %q, want key=value", raw)
		}
		ctx.Insert(key, parseValue(value))
	}
	return ctx, nil
}

func parseValue(raw string) any {
	if raw == "" {
		return ""
	}
	var out any
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return raw
	}
	switch out.(type) {
	case string, bool, int, float64:
		return out
	default:
		return raw
	}
}
