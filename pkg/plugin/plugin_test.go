package plugin

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/status"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
	"github.com/goliatone/go-alfasim-sdk/pkg/variables"
)

type fixture struct {
	data      *model.Schema
	container *model.Schema
	options   *model.Schema
}

func buildFixture(t *testing.T, containerType string) fixture {
	t.Helper()
	b := model.NewBuilder()
	data, err := b.DataModel("Data", model.Meta{Caption: "Data"},
		model.Attribute("name", fields.Must(fields.NewString("Name", "x"))),
	)
	require.NoError(t, err)
	container, err := b.ContainerModel("DataContainer", data, model.Meta{Caption: "Data"})
	require.NoError(t, err)
	options, err := b.DataModel("Options", model.Meta{Caption: "Options"},
		model.Attribute("target", fields.Must(fields.NewReference("Target", data, fields.WithContainerType(containerType)))),
		model.Attribute("tracer", fields.Must(fields.NewReference("Tracer", fields.Tracer))),
	)
	require.NoError(t, err)
	return fixture{data: data, container: container, options: options}
}

func TestNewRequiresName(t *testing.T) {
	_, err := New(" ")
	assert.ErrorIs(t, err, validation.ErrEmpty)

	p, err := New("acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", p.Caption())
	assert.Nil(t, p.Status(simcontext.NewStatic()))
}

func TestValidateAcceptsConsistentRegistration(t *testing.T) {
	f := buildFixture(t, "DataContainer")
	v, err := variables.New(nil, "plugin_var", "Plugin Var", "m")
	require.NoError(t, err)

	p, err := New("acme",
		WithCaption("Acme"),
		WithModels(f.data, f.container, f.options),
		WithVariables(v),
	)
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	got, ok := p.ResolveRefType("Data")
	require.True(t, ok)
	assert.Equal(t, fields.RefDataModel, got.RefKind())
	_, ok = p.ResolveRefType("TracerType")
	assert.True(t, ok)
	assert.Len(t, p.Containers("Data"), 1)
	assert.Len(t, p.AdditionalVariables(), 1)
}

func TestValidateAggregatesProblems(t *testing.T) {
	f := buildFixture(t, "Elsewhere")
	v, err := variables.New(nil, "plugin_var", "Plugin Var", "m")
	require.NoError(t, err)

	p, err := New("acme",
		WithModels(f.container, f.options, f.options),
		WithVariables(v, v),
	)
	require.NoError(t, err)

	err = p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidReference))
	msg := err.Error()
	for _, want := range []string{
		"model Options is registered more than once",
		"container DataContainer aggregates Data, which is not registered",
		"referenced model Data is not registered",
		"variable plugin_var is declared more than once",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidateDanglingContainerType(t *testing.T) {
	f := buildFixture(t, "Elsewhere")
	p, err := New("acme", WithModels(f.data, f.container, f.options))
	require.NoError(t, err)

	err = p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "container_type Elsewhere is not a registered container of Data")
}

func TestInfoAndStatus(t *testing.T) {
	f := buildFixture(t, "DataContainer")
	p, err := New("acme",
		WithCaption("Acme"),
		WithModels(f.data, f.container),
		WithStatus(func(ctx simcontext.Context) []status.Message {
			model, err := ctx.GetModel("Data")
			if err != nil {
				msg, _ := status.NewErrorMessage("Data", "model missing")
				return []status.Message{msg}
			}
			if name, _ := model.Value("name"); name == "" {
				msg, _ := status.NewWarningMessage("Data", "name is empty")
				return []status.Message{msg}
			}
			return nil
		}),
	)
	require.NoError(t, err)

	info, err := p.Info(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data", "DataContainer"}, info.Models())
	assert.Equal(t, "Acme", info.Caption())

	msgs := p.Status(simcontext.NewStatic())
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsError())

	inst, err := f.data.New(model.Attribute("name", fields.Must(fields.NewString("Name", ""))))
	require.NoError(t, err)
	msgs = p.Status(simcontext.NewStatic(simcontext.WithModels(inst)))
	require.Len(t, msgs, 1)
	assert.True(t, strings.Contains(msgs[0].Message(), "empty"))
}
