package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
)

func (a *app) unitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Query the unit database",
	}
	cmd.AddCommand(unitsCheckCmd(), unitsListCmd())
	return cmd
}

func unitsCheckCmd() *cobra.Command {
	var category, to string
	cmd := &cobra.Command{
		Use:   "check <value> <unit>",
		Short: "Validate a value and unit, optionally converting it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value %q is not a number", args[0])
			}
			scalar, err := units.Default().Scalar(value, args[1], category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", formatFloat(scalar.Value()), scalar.Unit(), scalar.Category())
			if to == "" {
				return nil
			}
			converted, err := scalar.Convert(to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "= %s %s\n", formatFloat(converted.Value()), converted.Unit())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category of the unit (default: the unit's first category)")
	cmd.Flags().StringVar(&to, "to", "", "convert to this unit")
	return cmd
}

func unitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [category]",
		Short: "List categories, or the units of one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db := units.Default()
			if len(args) == 0 {
				for _, category := range db.Categories() {
					fmt.Fprintln(cmd.OutOrStdout(), category)
				}
				return nil
			}
			symbols, err := db.Units(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", headingStyle.Render(args[0]), strings.Join(symbols, ", "))
			return nil
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
