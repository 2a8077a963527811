package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kinds of model declarations.
const (
	KindData      = "data"
	KindContainer = "container"
)

// TypeTabs is the attribute type of a tab layout.
const TypeTabs = "tabs"

// Document is one manifest file.
type Document struct {
	Name      string     `yaml:"name,omitempty"`
	Caption   string     `yaml:"caption,omitempty"`
	Models    []Model    `yaml:"models,omitempty"`
	Variables []Variable `yaml:"variables,omitempty"`

	source string
}

// Source names the file the document was parsed from.
func (d *Document) Source() string { return d.source }

// Model declares a data or container model.
type Model struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind,omitempty"`
	Caption    string      `yaml:"caption,omitempty"`
	Icon       string      `yaml:"icon,omitempty"`
	Model      string      `yaml:"model,omitempty"`
	Bases      []string    `yaml:"bases,omitempty"`
	Attributes []Attribute `yaml:"attributes,omitempty"`
}

// Tab groups attributes of a tab layout.
type Tab struct {
	Caption    string      `yaml:"caption"`
	Attributes []Attribute `yaml:"attributes"`
}

// Variable declares an additional secondary variable.
type Variable struct {
	Name                string `yaml:"name"`
	Caption             string `yaml:"caption"`
	Unit                string `yaml:"unit"`
	Visibility          string `yaml:"visibility,omitempty"`
	Location            string `yaml:"location,omitempty"`
	Scope               string `yaml:"multifield_scope,omitempty"`
	CheckedOnGUIDefault *bool  `yaml:"checked_on_gui_default,omitempty"`
}

// Attribute is one `{name, type, ...}` entry. Everything besides name and
// type is handed to the field decoder; tab layouts carry Tabs instead.
type Attribute struct {
	Name  string
	Type  string
	Attrs map[string]any
	Tabs  []Tab

	line int
}

// Line reports where the attribute starts in its file, or 0 when unknown.
func (a Attribute) Line() int { return a.line }

func (a *Attribute) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attribute must be a mapping", node.Line)
	}
	out := Attribute{Attrs: make(map[string]any), line: node.Line}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "name":
			if err := value.Decode(&out.Name); err != nil {
				return fmt.Errorf("line %d: name: %w", value.Line, err)
			}
		case "type":
			if err := value.Decode(&out.Type); err != nil {
				return fmt.Errorf("line %d: type: %w", value.Line, err)
			}
		case "tabs":
			if err := value.Decode(&out.Tabs); err != nil {
				return err
			}
		default:
			var decoded any
			if err := value.Decode(&decoded); err != nil {
				return fmt.Errorf("line %d: %s: %w", value.Line, key, err)
			}
			out.Attrs[key] = decoded
		}
	}
	if out.Type == TypeTabs && len(out.Attrs) > 0 {
		return fmt.Errorf("line %d: tab layout %s only accepts tabs", node.Line, out.Name)
	}
	if out.Type != TypeTabs && out.Tabs != nil {
		return fmt.Errorf("line %d: %s: tabs are only allowed on type %s", node.Line, out.Name, TypeTabs)
	}
	*a = out
	return nil
}

// MarshalYAML writes name, type and caption first, then the remaining keys
// sorted.
func (a Attribute) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) error {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &v)
		return nil
	}

	if err := add("name", a.Name); err != nil {
		return nil, err
	}
	if err := add("type", a.Type); err != nil {
		return nil, err
	}
	if a.Type == TypeTabs {
		return node, add("tabs", a.Tabs)
	}

	keys := make([]string, 0, len(a.Attrs))
	for key := range a.Attrs {
		if key != "caption" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := a.Attrs["caption"]; ok {
		keys = append([]string{"caption"}, keys...)
	}
	for _, key := range keys {
		if err := add(key, a.Attrs[key]); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Parse decodes a manifest file. Unknown top-level or model keys are
// rejected.
func Parse(data []byte, source string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("manifest: file %s is empty", source)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: file %s is empty", source)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", source, err)
	}
	doc.source = source
	return &doc, nil
}

// Marshal renders doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func isManifestFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
