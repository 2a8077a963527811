package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/manifest"
)

const manifestFile = "plugin.yaml"

type scaffold struct {
	Name      string `survey:"name"`
	Caption   string `survey:"caption"`
	Model     string `survey:"model"`
	Container bool   `survey:"container"`
}

func (a *app) newCmd() *cobra.Command {
	var (
		answers scaffold
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "new [dir]",
		Short: "Scaffold a plugin manifest",
		Long: `Writes plugin.yaml into dir (default: the current directory).

Without --name the command prompts for the plugin name, its caption, the
first model and whether a container aggregates it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if strings.TrimSpace(answers.Name) == "" {
				if err := promptScaffold(&answers); err != nil {
					return err
				}
			}

			doc := scaffoldDocument(answers)
			if _, err := manifest.Build([]*manifest.Document{doc}, manifest.WithLogger(a.logger)); err != nil {
				return err
			}
			data, err := manifest.Marshal(doc)
			if err != nil {
				return err
			}

			path := filepath.Join(dir, manifestFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			a.logger.Debug("manifest scaffolded", zap.String("path", path), zap.String("plugin", doc.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&answers.Name, "name", "", "plugin name; skips the prompts")
	cmd.Flags().StringVar(&answers.Caption, "caption", "", "plugin caption")
	cmd.Flags().StringVar(&answers.Model, "model", "Options", "name of the first model")
	cmd.Flags().BoolVar(&answers.Container, "container", false, "aggregate the first model in a container")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")
	return cmd
}

func promptScaffold(out *scaffold) error {
	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Plugin name:"},
			Validate: survey.Required,
		},
		{
			Name:   "caption",
			Prompt: &survey.Input{Message: "Caption shown in the host:"},
		},
		{
			Name:     "model",
			Prompt:   &survey.Input{Message: "First model:", Default: out.Model},
			Validate: survey.Required,
		},
		{
			Name:   "container",
			Prompt: &survey.Confirm{Message: "Aggregate it in a container?"},
		},
	}
	if err := survey.Ask(questions, out); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func scaffoldDocument(s scaffold) *manifest.Document {
	name := strings.TrimSpace(s.Name)
	modelName := strings.TrimSpace(s.Model)
	if modelName == "" {
		modelName = "Options"
	}
	caption := strings.TrimSpace(s.Caption)
	if caption == "" {
		caption = name
	}

	doc := &manifest.Document{
		Name:    name,
		Caption: caption,
		Models: []manifest.Model{{
			Name:    modelName,
			Kind:    manifest.KindData,
			Caption: modelName,
			Attributes: []manifest.Attribute{
				{Name: "description", Type: "string", Attrs: map[string]any{"caption": "Description", "value": "default"}},
				{Name: "enabled", Type: "boolean", Attrs: map[string]any{"caption": "Enabled", "value": true}},
				{Name: "length", Type: "quantity", Attrs: map[string]any{"caption": "Length", "value": 1.0, "unit": "m"}},
			},
		}},
	}
	if s.Container {
		doc.Models = append(doc.Models, manifest.Model{
			Name:    modelName + "Container",
			Kind:    manifest.KindContainer,
			Caption: modelName,
			Model:   modelName,
		})
	}
	return doc
}
