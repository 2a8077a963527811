package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-alfasim-sdk/pkg/hooks"
)

func (a *app) hooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Inspect the solver hook contract",
	}
	cmd.AddCommand(hooksListCmd(), a.hooksHeaderCmd())
	return cmd
}

func hooksListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the native hooks a plugin may export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := hooks.All()
			if category != "" {
				list = hooks.ByCategory(hooks.Category(category))
				if len(list) == 0 {
					return fmt.Errorf("unknown hook category %q", category)
				}
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("HOOK", "CATEGORY", "PROTOTYPE")
			for _, h := range list {
				t.Row(h.Macro(), string(h.Category()), h.Prototype())
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			if category == "" {
				fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render("GUI hooks"))
				for _, h := range hooks.GUIHooks() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", h.Name, h.Summary)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list hooks of this category")
	return cmd
}

func (a *app) hooksHeaderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "header <plugin-name>",
		Short: "Render the C header declaring every hook macro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return hooks.RenderHeader(cmd.OutOrStdout(), args[0])
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := hooks.RenderHeader(f, args[0]); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "header written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
