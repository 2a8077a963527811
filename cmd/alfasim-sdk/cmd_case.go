package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/alfacase"
	"github.com/goliatone/go-alfasim-sdk/pkg/prompt"
)

func (a *app) caseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Work with plugin configurations in alfacase form",
	}
	cmd.AddCommand(a.caseNewCmd())
	return cmd
}

func (a *app) caseNewCmd() *cobra.Command {
	var output string
	var tracers []int
	cmd := &cobra.Command{
		Use:   "new [dir]",
		Short: "Fill every model of a plugin interactively and write the configuration",
		Long: `Prompts for the attributes of every model declared under dir, in
registration order. Container models offer new items until declined, and
later references may select them. The result is written in alfacase form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlugin(args)
			if err != nil {
				return err
			}
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.OutOrStdout())
			}

			filler := prompt.New(
				prompt.WithDriver(driver),
				prompt.WithTracers(tracers...),
				prompt.WithLogger(a.logger),
			)
			instances, err := filler.FillPlugin(cmd.Context(), p)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := alfacase.Encode(&buf, p, instances...); err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			a.logger.Debug("case written", zap.String("path", output), zap.Int("models", len(instances)))
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("written "+output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntSliceVar(&tracers, "tracers", nil, "tracer ids built-in references may select")
	return cmd
}
