package alfacase

import (
	"fmt"

	"github.com/google/uuid"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Validate checks instances against the registration of p: every instance
// belongs to a registered model, no model has two instances, and every
// selected item exists in the instance of the referenced container. It
// returns the instances keyed by model name.
func Validate(p *plugin.Plugin, instances ...*model.Instance) (map[string]*model.Instance, error) {
	var result *multierror.Error
	byModel := make(map[string]*model.Instance, len(instances))
	for i, inst := range instances {
		if inst == nil {
			result = multierror.Append(result, fmt.Errorf("instances[%d] is nil", i))
			continue
		}
		name := inst.ModelName()
		registered, ok := p.Model(name)
		if !ok || !registered.Equal(inst.Schema()) {
			result = multierror.Append(result, fmt.Errorf("%s is not a model of plugin %s", name, p.Name()))
			continue
		}
		if _, dup := byModel[name]; dup {
			result = multierror.Append(result, fmt.Errorf("%s has more than one instance", name))
			continue
		}
		byModel[name] = inst
	}

	for _, inst := range instances {
		if inst == nil {
			continue
		}
		for _, err := range checkSelections(inst, byModel) {
			result = multierror.Append(result, fmt.Errorf("%s: %w", inst.ModelName(), err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("alfacase: %w", err)
	}
	return byModel, nil
}

func checkSelections(inst *model.Instance, byModel map[string]*model.Instance) []error {
	var errs []error
	for _, nf := range inst.Fields() {
		switch nf.Field.(type) {
		case *fields.Reference, *fields.MultipleReference:
		default:
			continue
		}
		sel, ok := inst.Selection(nf.Name)
		if !ok || len(sel.ItemIDs) == 0 {
			continue
		}
		container, ok := byModel[sel.ContainerKey]
		if !ok {
			errs = append(errs, &validation.FieldError{
				Attr:    nf.Name,
				Kind:    validation.ErrInvalidReference,
				Message: fmt.Sprintf("'%s' selects items of %s, which has no instance", nf.Name, sel.ContainerKey),
			})
			continue
		}
		for _, id := range sel.ItemIDs {
			if _, found := container.Item(id); !found {
				errs = append(errs, missingItem(nf.Name, sel.ContainerKey, id))
			}
		}
	}

	for _, item := range inst.Items() {
		for _, err := range checkSelections(item.Instance, byModel) {
			errs = append(errs, fmt.Errorf("item %s: %w", item.ID, err))
		}
	}
	return errs
}

func missingItem(attr, container string, id uuid.UUID) error {
	return &validation.FieldError{
		Attr:    attr,
		Kind:    validation.ErrInvalidReference,
		Message: fmt.Sprintf("'%s' selects item %s, which is not in %s", attr, id, container),
	}
}
