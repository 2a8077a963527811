package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-alfasim-sdk/pkg/manifest"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
)

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [dir]",
		Short: "Load every manifest under dir and report problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlugin(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", okStyle.Render("ok"), headingStyle.Render(p.Name()), p.Caption())
			for _, schema := range p.Models() {
				fmt.Fprintf(out, "  %-10s %s: %d attribute(s)\n", schema.RefKind(), schema.Name(), len(schema.Fields()))
			}
			if vars := p.AdditionalVariables(); len(vars) > 0 {
				fmt.Fprintf(out, "  %d additional variable(s)\n", len(vars))
			}
			return nil
		},
	}
}

// loadPlugin loads the manifests of the directory named by args, the current
// directory by default.
func (a *app) loadPlugin(args []string) (*plugin.Plugin, error) {
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	return manifest.LoadFS(os.DirFS(dir), manifest.WithLogger(a.logger))
}
