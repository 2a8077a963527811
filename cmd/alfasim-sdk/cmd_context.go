package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/alfacase"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/status"
)

func (a *app) contextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Work with recorded host state",
	}
	cmd.AddCommand(a.contextCheckCmd())
	return cmd
}

func (a *app) contextCheckCmd() *cobra.Command {
	var snapshotPath, casePath string
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Evaluate enable rules and plugin status against a snapshot",
		Long: `Loads the plugin declared under dir, builds a host context from the
snapshot and, when --case is given, from the plugin configuration it holds,
then reports which rule-guarded attributes are enabled and what the plugin
status is. Status errors make the command fail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if snapshotPath == "" {
				return errors.New("--snapshot is required")
			}
			p, err := a.loadPlugin(args)
			if err != nil {
				return err
			}
			snapshot, err := simcontext.LoadSnapshotFile(snapshotPath)
			if err != nil {
				return err
			}

			ctx := simcontext.Context(snapshot)
			if casePath != "" {
				ctx, err = withCase(snapshot, p, casePath)
				if err != nil {
					return err
				}
			}
			a.logger.Debug("context loaded",
				zap.String("snapshot", snapshotPath),
				zap.String("case", casePath),
			)

			out := cmd.OutOrStdout()
			writeEnableRules(out, p, ctx)
			messages := p.Status(ctx)
			writeStatus(out, messages)
			if status.HasErrors(messages) {
				return fmt.Errorf("plugin %s reports %d error(s)", p.Name(), len(status.Filter(messages, status.SeverityError)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML snapshot of the host state")
	cmd.Flags().StringVar(&casePath, "case", "", "plugin configuration document providing model values")
	return cmd
}

// withCase rebuilds snapshot with the instances decoded from the case file
// layered over its model values.
func withCase(snapshot *simcontext.Static, p *plugin.Plugin, path string) (*simcontext.Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	instances, err := alfacase.Decode(f, p)
	if err != nil {
		return nil, err
	}

	var models []simcontext.ModelValue
	for _, name := range snapshot.ModelNames() {
		if model, err := snapshot.GetModel(name); err == nil {
			models = append(models, model)
		}
	}
	for _, inst := range instances {
		models = append(models, inst)
	}

	options := []simcontext.StaticOption{
		simcontext.WithModels(models...),
		simcontext.WithPipelines(snapshot.GetPipelines()...),
		simcontext.WithPlugins(snapshot.GetPluginsInfos()...),
		simcontext.WithEdges(snapshot.GetEdges()...),
		simcontext.WithNodes(snapshot.GetNodes()...),
	}
	if physics, err := snapshot.GetPhysicsOptions(); err == nil {
		options = append(options, simcontext.WithPhysicsOptions(physics))
	}
	return simcontext.NewStatic(options...), nil
}

func writeEnableRules(w io.Writer, p *plugin.Plugin, ctx simcontext.Context) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODEL", "ATTRIBUTE", "RULE", "ENABLED")
	rows := 0
	for _, schema := range p.Models() {
		for _, nf := range schema.Fields() {
			if nf.Field.EnableExpr() == nil {
				continue
			}
			rule := nf.Field.EnableRule()
			if rule == "" {
				rule = "(function)"
			}
			enabled := warnStyle.Render("no")
			if nf.Field.Enabled(ctx) {
				enabled = okStyle.Render("yes")
			}
			t.Row(schema.Name(), nf.Name, rule, enabled)
			rows++
		}
	}
	if rows == 0 {
		fmt.Fprintln(w, "no attribute has an enable rule")
		return
	}
	fmt.Fprintln(w, t.String())
}

func writeStatus(w io.Writer, messages []status.Message) {
	if len(messages) == 0 {
		fmt.Fprintf(w, "%s no status messages\n", okStyle.Render("ok"))
		return
	}
	for _, msg := range messages {
		label := warnStyle.Render(string(msg.Severity()))
		if msg.IsError() {
			label = errorStyle.Render(string(msg.Severity()))
		}
		fmt.Fprintf(w, "%s %s: %s\n", label, msg.ModelName(), msg.Message())
	}
}
