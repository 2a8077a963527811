package alfacase

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	multierror "github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Decode reads a document written by Encode back into instances of the
// models of p, in document order. Attributes missing from the document keep
// their defaults. Every problem found is reported with its line.
func Decode(r io.Reader, p *plugin.Plugin) ([]*model.Instance, error) {
	if p == nil {
		return nil, fmt.Errorf("alfacase: plugin is required")
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("alfacase: document is empty")
		}
		return nil, fmt.Errorf("alfacase: parse: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("alfacase: line %d: document must be a mapping", root.Line)
	}

	var models *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case keyName:
			if value.Value != p.Name() {
				return nil, fmt.Errorf("alfacase: line %d: document belongs to plugin %q, not %q", value.Line, value.Value, p.Name())
			}
		case keyGUIModels:
			models = value
		default:
			return nil, fmt.Errorf("alfacase: line %d: unknown key %q", key.Line, key.Value)
		}
	}
	if models == nil {
		return nil, nil
	}
	if models.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("alfacase: line %d: %s must be a mapping", models.Line, keyGUIModels)
	}

	var result *multierror.Error
	var instances []*model.Instance
	for i := 0; i+1 < len(models.Content); i += 2 {
		key, value := models.Content[i], models.Content[i+1]
		schema, ok := p.Model(key.Value)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("line %d: %s is not a model of plugin %s", key.Line, key.Value, p.Name()))
			continue
		}
		inst, errs := decodeInstance(schema, value)
		for _, err := range errs {
			result = multierror.Append(result, fmt.Errorf("%s: %w", schema.Name(), err))
		}
		if inst != nil {
			instances = append(instances, inst)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("alfacase: %w", err)
	}

	if _, err := Validate(p, instances...); err != nil {
		return nil, err
	}
	return instances, nil
}

func decodeInstance(schema *model.Schema, node *yaml.Node) (*model.Instance, []error) {
	if node.Kind != yaml.MappingNode {
		return nil, []error{fmt.Errorf("line %d: must be a mapping", node.Line)}
	}
	inst, err := schema.New()
	if err != nil {
		return nil, []error{err}
	}

	var errs []error
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == keyChildren {
			errs = append(errs, decodeChildren(inst, value)...)
			continue
		}
		if err := decodeAttribute(inst, key.Value, value); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %s: %w", value.Line, key.Value, err))
		}
	}
	return inst, errs
}

func decodeChildren(inst *model.Instance, node *yaml.Node) []error {
	schema := inst.Schema()
	if !schema.IsContainer() {
		return []error{fmt.Errorf("line %d: only containers have %s", node.Line, keyChildren)}
	}
	if node.Kind != yaml.SequenceNode {
		return []error{fmt.Errorf("line %d: %s must be a list", node.Line, keyChildren)}
	}

	var errs []error
	for _, child := range node.Content {
		if child.Kind != yaml.MappingNode {
			errs = append(errs, fmt.Errorf("line %d: items must be mappings", child.Line))
			continue
		}
		var id uuid.UUID
		var rest []*yaml.Node
		badID := false
		for i := 0; i+1 < len(child.Content); i += 2 {
			if child.Content[i].Value == keyItemID {
				parsed, err := uuid.Parse(child.Content[i+1].Value)
				if err != nil {
					errs = append(errs, fmt.Errorf("line %d: %s: %w", child.Content[i+1].Line, keyItemID, err))
					badID = true
					continue
				}
				id = parsed
				continue
			}
			rest = append(rest, child.Content[i], child.Content[i+1])
		}
		if badID {
			continue
		}
		if id == uuid.Nil {
			errs = append(errs, fmt.Errorf("line %d: item needs a %s", child.Line, keyItemID))
			continue
		}

		item, itemErrs := decodeInstance(schema.Model(), &yaml.Node{Kind: yaml.MappingNode, Line: child.Line, Content: rest})
		for _, err := range itemErrs {
			errs = append(errs, fmt.Errorf("item %s: %w", id, err))
		}
		if item == nil {
			continue
		}
		if err := inst.AppendWithID(id, item); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", child.Line, err))
		}
	}
	return errs
}

func decodeAttribute(inst *model.Instance, name string, node *yaml.Node) error {
	current, ok := inst.Get(name)
	if !ok {
		return &validation.FieldError{
			Attr:    name,
			Kind:    validation.ErrNotMember,
			Message: fmt.Sprintf("'%s' is not an attribute of %s", name, inst.ModelName()),
		}
	}

	switch f := current.(type) {
	case *fields.String:
		var v string
		if err := decodeScalar(node, "!!str", &v); err != nil {
			return err
		}
		return inst.Replace(name, f.WithValue(v))
	case *fields.Boolean:
		var v bool
		if err := decodeScalar(node, "!!bool", &v); err != nil {
			return err
		}
		return inst.Replace(name, f.WithValue(v))
	case *fields.Enum:
		var v string
		if err := decodeScalar(node, "!!str", &v); err != nil {
			return err
		}
		if v == f.Selected() {
			return nil
		}
		selected, err := f.WithSelected(v)
		if err != nil {
			return err
		}
		return inst.Replace(name, selected)
	case *fields.Quantity:
		var q quantityDoc
		if err := decodeStrict(node, &q); err != nil {
			return err
		}
		updated, err := f.WithScalar(q.Value, q.Unit)
		if err != nil {
			return err
		}
		return inst.Replace(name, updated)
	case *fields.TableColumn:
		var q quantityDoc
		if err := decodeStrict(node, &q); err != nil {
			return err
		}
		updated, err := f.WithScalar(q.Value, q.Unit)
		if err != nil {
			return err
		}
		return inst.Replace(name, updated)
	case *fields.Table:
		var t tableDoc
		if err := decodeStrict(node, &t); err != nil {
			return err
		}
		return inst.SetTable(name, t.Columns)
	case *fields.Reference:
		var ref referenceDoc
		if err := decodeStrict(node, &ref); err != nil {
			return err
		}
		sel := model.Selection{}
		if ref.TracerID != nil {
			sel.TracerIDs = []int{*ref.TracerID}
		}
		if ref.PluginItemID != "" {
			id, err := uuid.Parse(ref.PluginItemID)
			if err != nil {
				return fmt.Errorf("plugin_item_id: %w", err)
			}
			sel.ItemIDs = []uuid.UUID{id}
		}
		return inst.Select(name, sel)
	case *fields.MultipleReference:
		var ref multipleReferenceDoc
		if err := decodeStrict(node, &ref); err != nil {
			return err
		}
		sel := model.Selection{ContainerKey: ref.ContainerKey, TracerIDs: ref.TracerIDList}
		for _, raw := range ref.ItemIDList {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("item_id_list: %w", err)
			}
			sel.ItemIDs = append(sel.ItemIDs, id)
		}
		return inst.Select(name, sel)
	}
	return fmt.Errorf("%s attributes are not configurable", current.Kind())
}

func decodeScalar(node *yaml.Node, tag string, out any) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != tag {
		return &validation.FieldError{
			Kind:     validation.ErrTypeMismatch,
			Expected: "a " + strings.TrimPrefix(tag, "!!"),
			Actual:   describeNode(node),
		}
	}
	return node.Decode(out)
}

// decodeStrict decodes a mapping rejecting keys out does not declare.
func decodeStrict(node *yaml.Node, out any) error {
	if node.Kind != yaml.MappingNode {
		return &validation.FieldError{
			Kind:     validation.ErrTypeMismatch,
			Expected: "a mapping",
			Actual:   describeNode(node),
		}
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	}
	return fmt.Sprintf("%q (%s)", node.Value, strings.TrimPrefix(node.ShortTag(), "!!"))
}
