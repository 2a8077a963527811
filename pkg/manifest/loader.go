package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/variables"
)

// Option configures loading.
type Option func(*options)

type options struct {
	logger *zap.Logger
	units  *units.Database
}

// WithLogger sets the logger handed to the model builder and the plugin.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithUnits selects the unit database quantities and variables are checked
// against. The default is units.Default().
func WithUnits(db *units.Database) Option {
	return func(o *options) {
		if db != nil {
			o.units = db
		}
	}
}

// LoadFile loads a single manifest file.
func LoadFile(path string, opts ...Option) (*plugin.Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	doc, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return Build([]*Document{doc}, opts...)
}

// LoadFS walks fsys in lexical order, parses every *.yaml and *.yml file and
// builds one plugin from all of them.
func LoadFS(fsys fs.FS, opts ...Option) (*plugin.Plugin, error) {
	if fsys == nil {
		return nil, fmt.Errorf("manifest: nil filesystem")
	}

	var docs []*Document
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}
		doc, err := Parse(data, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("manifest: no manifest files found")
	}
	return Build(docs, opts...)
}

// Build creates a validated plugin from parsed documents. Models are built
// in declaration order so a reference, base or container model must name a
// model declared earlier. Every problem found is reported.
func Build(docs []*Document, opts ...Option) (*plugin.Plugin, error) {
	cfg := options{logger: zap.NewNop(), units: units.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	l := loader{
		cfg:     cfg,
		builder: model.NewBuilder(model.WithLogger(cfg.logger)),
		built:   make(map[string]*model.Schema),
	}

	name, caption, err := pluginIdentity(docs)
	if err != nil {
		return nil, err
	}

	var result *multierror.Error
	var vars []variables.Variable
	for _, doc := range docs {
		for _, decl := range doc.Models {
			if err := l.addModel(decl); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: model %s: %w", doc.source, decl.Name, err))
			}
		}
		for _, decl := range doc.Variables {
			v, err := l.variable(decl)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", doc.source, err))
				continue
			}
			vars = append(vars, v)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	p, err := plugin.New(name,
		plugin.WithCaption(caption),
		plugin.WithModels(l.order...),
		plugin.WithVariables(vars...),
		plugin.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	cfg.logger.Debug("manifest loaded",
		zap.String("plugin", name),
		zap.Int("files", len(docs)),
		zap.Int("models", len(l.order)),
		zap.Int("variables", len(vars)),
	)
	return p, nil
}

func pluginIdentity(docs []*Document) (string, string, error) {
	var name, caption, origin string
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if n := strings.TrimSpace(doc.Name); n != "" {
			if name != "" && n != name {
				return "", "", fmt.Errorf("manifest: %s names plugin %s but %s names it %s", doc.source, n, origin, name)
			}
			name, origin = n, doc.source
		}
		if caption == "" {
			caption = strings.TrimSpace(doc.Caption)
		}
	}
	if name == "" {
		return "", "", fmt.Errorf("manifest: no file declares the plugin name")
	}
	return name, caption, nil
}

type loader struct {
	cfg     options
	builder model.Builder
	built   map[string]*model.Schema
	order   []*model.Schema
}

func (l *loader) ResolveRefType(name string) (fields.RefType, bool) {
	schema, ok := l.built[name]
	if !ok {
		return nil, false
	}
	return schema, true
}

func (l *loader) addModel(decl Model) error {
	if _, exists := l.built[decl.Name]; exists {
		return fmt.Errorf("declared more than once")
	}

	meta := model.Meta{Caption: decl.Caption, Icon: decl.Icon}
	for _, baseName := range decl.Bases {
		base, ok := l.built[baseName]
		if !ok {
			return fmt.Errorf("base %s is not declared before this model", baseName)
		}
		meta.Bases = append(meta.Bases, base)
	}

	attrs, err := l.attributes(decl.Attributes)
	if err != nil {
		return err
	}

	var schema *model.Schema
	switch strings.ToLower(strings.TrimSpace(decl.Kind)) {
	case "", KindData:
		if decl.Model != "" {
			return fmt.Errorf("only container models take a model")
		}
		schema, err = l.builder.DataModel(decl.Name, meta, attrs...)
	case KindContainer:
		item, ok := l.built[decl.Model]
		if !ok {
			return fmt.Errorf("model %q is not declared before this container", decl.Model)
		}
		schema, err = l.builder.ContainerModel(decl.Name, item, meta, attrs...)
	default:
		return fmt.Errorf("kind must be %s or %s, got %q", KindData, KindContainer, decl.Kind)
	}
	if err != nil {
		return err
	}

	l.built[schema.Name()] = schema
	l.order = append(l.order, schema)
	return nil
}

func (l *loader) attributes(decls []Attribute) ([]model.Attr, error) {
	attrs := make([]model.Attr, 0, len(decls))
	for _, decl := range decls {
		member, err := l.member(decl)
		if err != nil {
			return nil, fmt.Errorf("line %d: attribute %s: %w", decl.line, decl.Name, err)
		}
		attrs = append(attrs, model.Attribute(decl.Name, member))
	}
	return attrs, nil
}

func (l *loader) member(decl Attribute) (any, error) {
	if decl.Type == TypeTabs {
		tabs := make([]model.Tab, 0, len(decl.Tabs))
		for _, tab := range decl.Tabs {
			attrs, err := l.attributes(tab.Attributes)
			if err != nil {
				return nil, fmt.Errorf("tab %s: %w", tab.Caption, err)
			}
			tabs = append(tabs, model.NewTab(tab.Caption, attrs...))
		}
		return model.NewTabs(tabs...), nil
	}

	kind, ok := fields.ParseKind(decl.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", decl.Type)
	}
	return fields.Decode(kind, decl.Attrs, l, fields.WithUnits(l.cfg.units))
}

func (l *loader) variable(decl Variable) (variables.Variable, error) {
	var opts []variables.Option
	if decl.Visibility != "" {
		opts = append(opts, variables.WithVisibility(variables.Visibility(decl.Visibility)))
	}
	if decl.Location != "" {
		opts = append(opts, variables.WithLocation(variables.Location(decl.Location)))
	}
	if decl.Scope != "" {
		opts = append(opts, variables.WithScope(variables.Scope(decl.Scope)))
	}
	if decl.CheckedOnGUIDefault != nil {
		opts = append(opts, variables.WithCheckedOnGUIDefault(*decl.CheckedOnGUIDefault))
	}
	return variables.New(l.cfg.units, decl.Name, decl.Caption, decl.Unit, opts...)
}
