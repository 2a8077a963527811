package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-alfasim-sdk/pkg/prompt"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B")).Bold(true)
)

type app struct {
	verbose bool
	logger  *zap.Logger
	driver  prompt.Driver
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{})
}

func newRootCmdWith(a *app) *cobra.Command {
	a.logger = zap.NewNop()

	root := &cobra.Command{
		Use:   "alfasim-sdk",
		Short: "Tooling for ALFAsim plugin authors",
		Long: `alfasim-sdk scaffolds and checks ALFAsim plugins.

Plugins are declared in YAML manifests. The commands below lint them,
export their models as OpenAPI, render the C header of the solver hooks,
fill plugin configurations interactively and evaluate enable rules and
status against a recorded host snapshot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newCmd(),
		a.lintCmd(),
		a.hooksCmd(),
		a.unitsCmd(),
		a.exportCmd(),
		a.contextCmd(),
		a.caseCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
