package alfacase

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
)

// Keys of the document. Leading underscores cannot clash with attribute
// names, which the model builder rejects.
const (
	keyName       = "name"
	keyGUIModels  = "gui_models"
	keyChildren   = "_children_list"
	keyItemID     = "_plugin_item_id"
	defaultIndent = 2
)

// Encode writes the plugin section of a case: the plugin name and, under
// gui_models, one entry per instance in model registration order. Instances
// are checked against the registration first.
func Encode(w io.Writer, p *plugin.Plugin, instances ...*model.Instance) error {
	if p == nil {
		return fmt.Errorf("alfacase: plugin is required")
	}
	byModel, err := Validate(p, instances...)
	if err != nil {
		return err
	}

	models := newMapping()
	for _, schema := range p.Models() {
		inst, ok := byModel[schema.Name()]
		if !ok {
			continue
		}
		node, err := encodeInstance(inst)
		if err != nil {
			return fmt.Errorf("alfacase: %s: %w", schema.Name(), err)
		}
		models.setNode(schema.Name(), node)
	}

	root := newMapping()
	if err := root.set(keyName, p.Name()); err != nil {
		return fmt.Errorf("alfacase: %w", err)
	}
	root.setNode(keyGUIModels, models.node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(defaultIndent)
	if err := enc.Encode(root.node); err != nil {
		return fmt.Errorf("alfacase: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("alfacase: encode: %w", err)
	}
	return nil
}

func encodeInstance(inst *model.Instance) (*yaml.Node, error) {
	out := newMapping()
	for _, nf := range inst.Fields() {
		value, ok, err := encodeField(inst, nf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", nf.Name, err)
		}
		if !ok {
			continue
		}
		if err := out.set(nf.Name, value); err != nil {
			return nil, err
		}
	}

	if inst.Schema().IsContainer() {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range inst.Items() {
			node, err := encodeInstance(item.Instance)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", item.ID, err)
			}
			idKey, idValue := pair(keyItemID, item.ID.String())
			node.Content = append([]*yaml.Node{idKey, idValue}, node.Content...)
			children.Content = append(children.Content, node)
		}
		out.setNode(keyChildren, children)
	}
	return out.node, nil
}

type quantityDoc struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit"`
}

type tableDoc struct {
	Columns map[string][]float64 `yaml:"columns"`
}

type referenceDoc struct {
	PluginItemID string `yaml:"plugin_item_id,omitempty"`
	TracerID     *int   `yaml:"tracer_id,omitempty"`
}

type multipleReferenceDoc struct {
	ContainerKey string   `yaml:"container_key,omitempty"`
	ItemIDList   []string `yaml:"item_id_list,omitempty"`
	TracerIDList []int    `yaml:"tracer_id_list,omitempty"`
}

// encodeField returns the document value of one attribute. Data references
// and unselected references have none.
func encodeField(inst *model.Instance, nf model.NamedField) (any, bool, error) {
	switch f := nf.Field.(type) {
	case *fields.String:
		return f.Value(), true, nil
	case *fields.Boolean:
		return f.Value(), true, nil
	case *fields.Enum:
		return f.Selected(), true, nil
	case *fields.Quantity:
		return quantityDoc{Value: f.Value(), Unit: f.Unit()}, true, nil
	case *fields.TableColumn:
		return quantityDoc{Value: f.Value().Value(), Unit: f.Value().Unit()}, true, nil
	case *fields.Table:
		data, ok := inst.TableData(nf.Name)
		if !ok {
			data = model.TableData{}
			for _, row := range f.Rows() {
				data[row.ID()] = []float64{row.Value().Value()}
			}
		}
		return tableDoc{Columns: data}, true, nil
	case *fields.Reference:
		sel, ok := inst.Selection(nf.Name)
		if !ok || sel.Empty() {
			return nil, false, nil
		}
		if len(sel.TracerIDs) > 0 {
			id := sel.TracerIDs[0]
			return referenceDoc{TracerID: &id}, true, nil
		}
		return referenceDoc{PluginItemID: sel.ItemIDs[0].String()}, true, nil
	case *fields.MultipleReference:
		sel, ok := inst.Selection(nf.Name)
		if !ok || sel.Empty() {
			return nil, false, nil
		}
		doc := multipleReferenceDoc{ContainerKey: sel.ContainerKey, TracerIDList: sel.TracerIDs}
		for _, id := range sel.ItemIDs {
			doc.ItemIDList = append(doc.ItemIDList, id.String())
		}
		return doc, true, nil
	case *fields.DataReference:
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("unsupported field kind %s", nf.Field.Kind())
}

// mapping builds a YAML mapping that keeps insertion order.
type mapping struct {
	node *yaml.Node
}

func newMapping() *mapping {
	return &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
}

func (m *mapping) set(key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	m.setNode(key, &v)
	return nil
}

func (m *mapping) setNode(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

func pair(key, value string) (*yaml.Node, *yaml.Node) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
