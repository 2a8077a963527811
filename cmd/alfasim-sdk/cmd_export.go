package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-alfasim-sdk/pkg/openapi"
	"github.com/goliatone/go-alfasim-sdk/pkg/uischema"
)

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export plugin models to other formats",
	}
	cmd.AddCommand(a.exportOpenAPICmd())
	return cmd
}

func (a *app) exportOpenAPICmd() *cobra.Command {
	var title, version, output, overlayDir string
	cmd := &cobra.Command{
		Use:   "openapi [dir]",
		Short: "Export the models of a manifest as an OpenAPI document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlugin(args)
			if err != nil {
				return err
			}
			if title == "" {
				title = p.Caption()
			}

			opts := []openapi.Option{openapi.WithLogger(a.logger)}
			if overlayDir != "" {
				store, err := uischema.LoadFS(os.DirFS(overlayDir))
				if err != nil {
					return err
				}
				opts = append(opts, openapi.WithOverlay(store))
			}

			exporter := openapi.New(opts...)
			doc, err := exporter.Export(cmd.Context(), title, version, p.Models()...)
			if err != nil {
				return err
			}
			data, err := openapi.Marshal(doc)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OpenAPI document written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title (default: the plugin caption)")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "document version")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&overlayDir, "ui-schema", "", "directory of presentation overlays applied to the hints")
	return cmd
}
