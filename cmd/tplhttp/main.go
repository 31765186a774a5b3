// Package main provides the tplhttp command: serve templates over HTTP or
// render one to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Build info set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(buildVersion())); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(surveyPrompter{})
}

func newRootCmdWith(prompts prompter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tplhttp",
		Short: "Render Jinja templates into HTTP responses",
		Long: `tplhttp renders templates into HTTP bodies whose content type follows the
template file extension.

  tplhttp serve                       serve GET /{name} with hello.html
  tplhttp render page.html --set a=1  print a rendered template`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("dir", "", "template directory (defaults to the embedded templates)")
	cmd.PersistentFlags().StringSlice("templates", nil, "glob patterns loaded at startup")
	cmd.PersistentFlags().Bool("strict", true, "fail on variables missing from the context")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd(prompts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tplhttp version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tplhttp %s\n", buildVersion())
			return err
		},
	}
}
