package uischema

// Store keeps the parsed model overlays. It is safe for concurrent readers
// when treated as immutable after construction.
type Store struct {
	models map[string]Model
}

// Model describes the presentation overrides for one plugin model.
type Model struct {
	Name   string
	Source string
	Title  string
	Fields map[string]FieldConfig
}

// FieldConfig customises how an attribute is presented. Empty values keep
// the hint derived from the field declaration.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Section     string            `json:"section,omitempty" yaml:"section,omitempty"`
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

func (cfg FieldConfig) clone() FieldConfig {
	out := cfg
	if cfg.Order != nil {
		order := *cfg.Order
		out.Order = &order
	}
	if len(cfg.UIHints) > 0 {
		out.UIHints = make(map[string]string, len(cfg.UIHints))
		for k, v := range cfg.UIHints {
			out.UIHints[k] = v
		}
	}
	return out
}
