package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/testsupport"
)

// stubDriver answers prompts by message. Unscripted prompts take their
// default.
type stubDriver struct {
	inputs   map[string][]string
	confirms map[string][]bool
	selects  map[string]string
	multi    map[string][]string
	fail     map[string]error
	infos    []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if err := s.fail[cfg.Message]; err != nil {
		return "", err
	}
	queue := s.inputs[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	s.inputs[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if err := s.fail[cfg.Message]; err != nil {
		return false, err
	}
	queue := s.confirms[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	s.confirms[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	answer, ok := s.selects[cfg.Message]
	if !ok {
		return cfg.DefaultIndex, nil
	}
	for i, option := range cfg.Options {
		if strings.HasPrefix(option, answer) {
			return i, nil
		}
	}
	return -1, errors.New("no option matches " + answer)
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	answers, ok := s.multi[cfg.Message]
	if !ok {
		return cfg.Defaults, nil
	}
	var out []int
	for _, answer := range answers {
		for i, option := range cfg.Options {
			if strings.HasPrefix(option, answer) {
				out = append(out, i)
			}
		}
	}
	return out, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func fluidsWith(t *testing.T, sample testsupport.Sample, names ...string) (*model.Instance, []uuid.UUID) {
	t.Helper()
	container := testsupport.NewInstance(t, sample.Fluids)
	var ids []uuid.UUID
	for _, name := range names {
		item := testsupport.NewInstance(t, sample.Fluid,
			model.Attribute("name", fields.Must(fields.NewString("Name", name))))
		id, err := container.Append(item)
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		ids = append(ids, id)
	}
	return container, ids
}

func TestFillOptions(t *testing.T) {
	sample := testsupport.SamplePlugin(t)
	fluids, ids := fluidsWith(t, sample, "gas", "water")
	driver := &stubDriver{
		confirms: map[string][]bool{"Active": {false}},
		inputs:   map[string][]string{"Factor": {"abc", "2.5"}},
		selects:  map[string]string{"Fluid": "water", "Tracer": "tracer 2"},
		multi:    map[string][]string{"Mixture": {"gas", "water"}},
	}

	inst, err := New(WithDriver(driver), WithContainers(fluids), WithTracers(1, 2)).
		Fill(context.Background(), sample.Options, nil)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if active, _ := inst.Value("active"); active != false {
		t.Fatalf("expected active=false, got %v", active)
	}
	if factor, _ := inst.Value("factor"); factor != 2.5 {
		t.Fatalf("expected factor=2.5, got %v", factor)
	}
	fluid, _ := inst.Selection("fluid")
	if diff := cmp.Diff([]uuid.UUID{ids[1]}, fluid.ItemIDs); diff != "" {
		t.Fatalf("fluid selection mismatch (-want +got):\n%s", diff)
	}
	mixture, _ := inst.Selection("mixture")
	if diff := cmp.Diff(ids, mixture.ItemIDs); diff != "" {
		t.Fatalf("mixture selection mismatch (-want +got):\n%s", diff)
	}
	tracer, _ := inst.Selection("tracer")
	if diff := cmp.Diff([]int{2}, tracer.TracerIDs); diff != "" {
		t.Fatalf("tracer selection mismatch (-want +got):\n%s", diff)
	}

	var invalid bool
	for _, msg := range driver.infos {
		if strings.HasPrefix(msg, "Invalid Factor") {
			invalid = true
		}
	}
	if !invalid {
		t.Fatalf("expected the invalid factor to be reported, got %v", driver.infos)
	}
}

func TestFillKeepsBaseValues(t *testing.T) {
	sample := testsupport.SamplePlugin(t)
	base := testsupport.NewInstance(t, sample.Fluid,
		model.Attribute("name", fields.Must(fields.NewString("Name", "brine"))))

	inst, err := New(WithDriver(&stubDriver{})).Fill(context.Background(), sample.Fluid, base)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if name, _ := inst.Value("name"); name != "brine" {
		t.Fatalf("expected the base value to be the default, got %v", name)
	}
	if phase, _ := inst.Value("phase"); phase != "oil" {
		t.Fatalf("expected the initial phase, got %v", phase)
	}

	if _, err := New(WithDriver(&stubDriver{})).Fill(context.Background(), sample.Options, base); err == nil {
		t.Fatalf("expected an error filling Options from a Fluid instance")
	}
}

func TestFillReferencesWithoutCandidates(t *testing.T) {
	sample := testsupport.SamplePlugin(t)
	driver := &stubDriver{}

	inst, err := New(WithDriver(driver)).Fill(context.Background(), sample.Options, nil)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if sel, ok := inst.Selection("fluid"); ok && !sel.Empty() {
		t.Fatalf("expected no selection, got %+v", sel)
	}
	want := []string{"Fluid: nothing to select", "Mixture: nothing to select", "Tracer: nothing to select"}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}

func TestFillPluginAddsContainerItems(t *testing.T) {
	sample := testsupport.SamplePlugin(t)
	driver := &stubDriver{
		confirms: map[string][]bool{"Add Fluid to Fluids?": {true, false}},
		inputs:   map[string][]string{"Name": {"crude", "condensate"}},
		selects:  map[string]string{"Fluid": "condensate"},
	}

	instances, err := New(WithDriver(driver)).FillPlugin(context.Background(), sample.Plugin)
	if err != nil {
		t.Fatalf("FillPlugin: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("expected one instance per model, got %d", len(instances))
	}
	fluids := instances[1]
	items := fluids.Items()
	if len(items) != 1 {
		t.Fatalf("expected one container item, got %d", len(items))
	}
	if name, _ := items[0].Instance.Value("name"); name != "condensate" {
		t.Fatalf("unexpected item name %v", name)
	}
	sel, _ := instances[2].Selection("fluid")
	if diff := cmp.Diff([]uuid.UUID{items[0].ID}, sel.ItemIDs); diff != "" {
		t.Fatalf("fluid selection mismatch (-want +got):\n%s", diff)
	}
}

func TestFillAborts(t *testing.T) {
	sample := testsupport.SamplePlugin(t)
	driver := &stubDriver{fail: map[string]error{"Active": ErrAborted}}

	_, err := New(WithDriver(driver)).Fill(context.Background(), sample.Options, nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
