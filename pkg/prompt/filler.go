package prompt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
)

const noSelection = "(none)"

// Option configures a Filler.
type Option func(*Filler)

// WithDriver selects the prompt driver. The default prompts on the terminal
// through survey.
func WithDriver(driver Driver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithUnits selects the database unit choices are listed from.
func WithUnits(db *units.Database) Option {
	return func(f *Filler) {
		if db != nil {
			f.units = db
		}
	}
}

// WithContainers makes the items of the given container instances
// selectable by reference attributes.
func WithContainers(containers ...*model.Instance) Option {
	return func(f *Filler) {
		for _, c := range containers {
			if c != nil {
				f.containers[c.ModelName()] = c
			}
		}
	}
}

// WithTracers lists the tracer ids built-in references may select.
func WithTracers(ids ...int) Option {
	return func(f *Filler) {
		f.tracers = append(f.tracers, ids...)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Filler builds model instances from answers to prompts, one prompt per
// configurable attribute.
type Filler struct {
	driver     Driver
	units      *units.Database
	containers map[string]*model.Instance
	tracers    []int
	logger     *zap.Logger
}

// New creates a Filler.
func New(opts ...Option) *Filler {
	f := &Filler{
		units:      units.Default(),
		containers: make(map[string]*model.Instance),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// FillPlugin fills one instance per model of p in registration order.
// Filled containers become selectable by the references of later models.
func (f *Filler) FillPlugin(ctx context.Context, p *plugin.Plugin) ([]*model.Instance, error) {
	if p == nil {
		return nil, errors.New("prompt: plugin is required")
	}
	var out []*model.Instance
	for _, schema := range p.Models() {
		if err := f.driver.Info(ctx, schema.Caption()); err != nil {
			return nil, err
		}
		inst, err := f.Fill(ctx, schema, nil)
		if err != nil {
			return nil, err
		}
		if schema.IsContainer() {
			f.containers[schema.Name()] = inst
		}
		out = append(out, inst)
	}
	return out, nil
}

// Fill prompts for every attribute of schema, defaulting to the values of
// base, or of the schema when base is nil. Containers are then offered new
// items until the user declines.
func (f *Filler) Fill(ctx context.Context, schema *model.Schema, base *model.Instance) (*model.Instance, error) {
	if schema == nil {
		return nil, errors.New("prompt: schema is required")
	}
	inst := base
	if inst == nil {
		var err error
		if inst, err = schema.New(); err != nil {
			return nil, err
		}
	} else if !inst.Schema().Equal(schema) {
		return nil, fmt.Errorf("prompt: instance of %s cannot fill %s", inst.ModelName(), schema.Name())
	}

	for _, nf := range schema.Fields() {
		if err := f.promptField(ctx, inst, nf); err != nil {
			return nil, err
		}
	}

	if schema.IsContainer() {
		if err := f.promptItems(ctx, inst); err != nil {
			return nil, err
		}
	}
	f.logger.Debug("model filled", zap.String("model", schema.Name()))
	return inst, nil
}

func (f *Filler) promptItems(ctx context.Context, container *model.Instance) error {
	itemModel := container.Schema().Model()
	for {
		more, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s to %s?", itemModel.Caption(), container.Schema().Caption()),
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		item, err := f.Fill(ctx, itemModel, nil)
		if err != nil {
			return err
		}
		if _, err := container.Append(item); err != nil {
			return err
		}
	}
}

func (f *Filler) promptField(ctx context.Context, inst *model.Instance, nf model.NamedField) error {
	current, _ := inst.Get(nf.Name)
	switch field := current.(type) {
	case *fields.String:
		value, err := f.driver.Input(ctx, InputConfig{Message: field.Caption(), Default: field.Value()})
		if err != nil {
			return err
		}
		return inst.Replace(nf.Name, field.WithValue(value))
	case *fields.Boolean:
		value, err := f.driver.Confirm(ctx, ConfirmConfig{Message: field.Caption(), Default: field.Value()})
		if err != nil {
			return err
		}
		return inst.Replace(nf.Name, field.WithValue(value))
	case *fields.Enum:
		values := field.Values()
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      field.Caption(),
			Options:      values,
			DefaultIndex: indexOf(values, field.Selected()),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			return nil
		}
		selected, err := field.WithSelected(values[idx])
		if err != nil {
			return err
		}
		return inst.Replace(nf.Name, selected)
	case *fields.Quantity:
		value, unit, err := f.promptQuantity(ctx, field.Caption(), field)
		if err != nil {
			return err
		}
		updated, err := field.WithScalar(value, unit)
		if err != nil {
			return err
		}
		return inst.Replace(nf.Name, updated)
	case *fields.TableColumn:
		value, unit, err := f.promptQuantity(ctx, field.Caption(), field.Value())
		if err != nil {
			return err
		}
		updated, err := field.WithScalar(value, unit)
		if err != nil {
			return err
		}
		return inst.Replace(nf.Name, updated)
	case *fields.Table:
		rows := len(field.Rows())
		if data, ok := inst.TableData(nf.Name); ok {
			rows = data.Rows()
		}
		return f.driver.Info(ctx, fmt.Sprintf("%s: table kept (%d row(s))", field.Caption(), rows))
	case *fields.Reference:
		return f.promptReference(ctx, inst, nf.Name, field.Caption(), field.RefType(), field.ContainerType(), false)
	case *fields.MultipleReference:
		return f.promptReference(ctx, inst, nf.Name, field.Caption(), field.RefType(), field.ContainerType(), true)
	}
	// data references are resolved by the host
	return nil
}

func (f *Filler) promptQuantity(ctx context.Context, caption string, q *fields.Quantity) (float64, string, error) {
	var value float64
	for {
		raw, err := f.driver.Input(ctx, InputConfig{
			Message:   caption,
			Default:   strconv.FormatFloat(q.Value(), 'g', -1, 64),
			Help:      "unit: " + q.Unit(),
			Validator: validateNumber,
		})
		if err != nil {
			return 0, "", err
		}
		if err := validateNumber(raw); err != nil {
			if err := f.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", caption, err)); err != nil {
				return 0, "", err
			}
			continue
		}
		value, _ = strconv.ParseFloat(strings.TrimSpace(raw), 64)
		break
	}

	choices, err := f.units.Units(q.Category())
	if err != nil || len(choices) < 2 {
		return value, q.Unit(), nil
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      caption + " unit",
		Options:      choices,
		DefaultIndex: indexOf(choices, q.Unit()),
	})
	if err != nil {
		return 0, "", err
	}
	if idx < 0 || idx >= len(choices) {
		return value, q.Unit(), nil
	}
	return value, choices[idx], nil
}

func validateNumber(raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%q is not a finite number", raw)
	}
	return nil
}

type candidate struct {
	label    string
	itemID   uuid.UUID
	tracerID int
}

func (f *Filler) promptReference(ctx context.Context, inst *model.Instance, name, caption string, target fields.RefType, container string, multiple bool) error {
	builtin := target.RefKind() == fields.RefBuiltin
	candidates := f.candidates(builtin, container)
	if len(candidates) == 0 {
		return f.driver.Info(ctx, fmt.Sprintf("%s: nothing to select", caption))
	}

	previous, _ := inst.Selection(name)
	options := make([]string, 0, len(candidates)+1)
	var defaults []int
	for i, c := range candidates {
		options = append(options, c.label)
		if c.selectedBy(previous, builtin) {
			defaults = append(defaults, i)
		}
	}

	var chosen []candidate
	if multiple {
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{Message: caption, Options: options, Defaults: defaults})
		if err != nil {
			return err
		}
		for _, idx := range picked {
			if idx >= 0 && idx < len(candidates) {
				chosen = append(chosen, candidates[idx])
			}
		}
	} else {
		options = append([]string{noSelection}, options...)
		def := 0
		if len(defaults) > 0 {
			def = defaults[0] + 1
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: caption, Options: options, DefaultIndex: def})
		if err != nil {
			return err
		}
		if idx > 0 && idx <= len(candidates) {
			chosen = append(chosen, candidates[idx-1])
		}
	}

	sel := model.Selection{}
	for _, c := range chosen {
		if builtin {
			sel.TracerIDs = append(sel.TracerIDs, c.tracerID)
		} else {
			sel.ItemIDs = append(sel.ItemIDs, c.itemID)
		}
	}
	return inst.Select(name, sel)
}

func (f *Filler) candidates(builtin bool, container string) []candidate {
	var out []candidate
	if builtin {
		for _, id := range f.tracers {
			out = append(out, candidate{label: "tracer " + strconv.Itoa(id), tracerID: id})
		}
		return out
	}
	inst, ok := f.containers[container]
	if !ok {
		return nil
	}
	for _, item := range inst.Items() {
		out = append(out, candidate{label: itemLabel(item), itemID: item.ID})
	}
	return out
}

func (c candidate) selectedBy(sel model.Selection, builtin bool) bool {
	if builtin {
		for _, id := range sel.TracerIDs {
			if id == c.tracerID {
				return true
			}
		}
		return false
	}
	for _, id := range sel.ItemIDs {
		if id == c.itemID {
			return true
		}
	}
	return false
}

// itemLabel names an item by its first string attribute, falling back to
// its id.
func itemLabel(item model.Item) string {
	for _, nf := range item.Instance.Fields() {
		if s, ok := nf.Field.(*fields.String); ok && strings.TrimSpace(s.Value()) != "" {
			return fmt.Sprintf("%s (%s)", s.Value(), item.ID.String()[:8])
		}
	}
	return item.ID.String()
}
