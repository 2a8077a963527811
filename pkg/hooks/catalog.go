package hooks

import (
	"fmt"
	"strings"
)

// Category groups hooks by the solver stage that calls them.
type Category string

const (
	CategoryLifecycle          Category = "lifecycle"
	CategorySecondaryVariables Category = "secondary_variables"
	CategorySourceTerms        Category = "source_terms"
	CategoryStateVariables     Category = "state_variables"
	CategorySolids             Category = "solids"
	CategoryTracers            Category = "tracers"
	CategoryExtras             Category = "extras"
	CategoryGUI                Category = "gui"
)

// Categories lists the solver categories in catalog order.
func Categories() []Category {
	return []Category{
		CategoryLifecycle,
		CategorySecondaryVariables,
		CategorySourceTerms,
		CategoryStateVariables,
		CategorySolids,
		CategoryTracers,
		CategoryExtras,
	}
}

// Param is one argument of a native hook.
type Param struct {
	Name  string
	CType string
}

// Declaration renders the parameter as it appears in a C prototype. Array
// types keep their extent after the name.
func (p Param) Declaration() string {
	if idx := strings.Index(p.CType, "["); idx > 0 {
		return fmt.Sprintf("%s %s%s", strings.TrimSpace(p.CType[:idx]), p.Name, p.CType[idx:])
	}
	return fmt.Sprintf("%s %s", p.CType, p.Name)
}

// Hook is a callback signature the simulator invokes into plugin code.
type Hook struct {
	name     string
	category Category
	params   []Param
	returns  string
	summary  string
}

func (h Hook) Name() string       { return h.name }
func (h Hook) Category() Category { return h.category }
func (h Hook) Returns() string    { return h.returns }
func (h Hook) Summary() string    { return h.summary }
func (h Hook) Params() []Param    { return append([]Param(nil), h.params...) }

// Macro is the name plugin sources use to implement the hook.
func (h Hook) Macro() string { return "HOOK_" + strings.ToUpper(h.name) }

// Symbol is the exported function name the simulator resolves.
func (h Hook) Symbol() string { return "alfasim_v1_" + h.name }

// Prototype renders the C declaration of the exported function.
func (h Hook) Prototype() string {
	decls := make([]string, len(h.params))
	for i, p := range h.params {
		decls[i] = p.Declaration()
	}
	return fmt.Sprintf("%s %s(%s)", h.returns, h.Symbol(), strings.Join(decls, ", "))
}

func (h Hook) paramNames() string {
	names := make([]string, len(h.params))
	for i, p := range h.params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func hook(name string, category Category, summary string, params ...Param) Hook {
	return Hook{name: name, category: category, params: params, returns: "int", summary: summary}
}

func ctx() Param                 { return Param{Name: "ctx", CType: "void*"} }
func ptr(name string) Param      { return Param{Name: name, CType: "void*"} }
func integer(name string) Param  { return Param{Name: name, CType: "int"} }
func double(name string) Param   { return Param{Name: name, CType: "double"} }
func pair(name string) Param     { return Param{Name: name, CType: "const double[2]"} }
func floating(name string) Param { return Param{Name: name, CType: "float"} }

var catalog = []Hook{
	hook("initialize", CategoryLifecycle,
		"Initializes plugin internal data once the simulation starts.",
		ctx()),
	hook("finalize", CategoryLifecycle,
		"Releases plugin internal data when the simulation ends.",
		ctx()),

	hook("update_plugins_secondary_variables_on_first_timestep", CategorySecondaryVariables,
		"Updates secondary variables registered by the plugin on the first time step.",
		ctx()),
	hook("update_plugins_secondary_variables", CategorySecondaryVariables,
		"Updates secondary variables registered by the plugin after every time step.",
		ctx()),
	hook("update_plugins_secondary_variables_on_tracer_solver", CategorySecondaryVariables,
		"Updates secondary variables that depend on tracer mass fractions.",
		ctx()),

	hook("calculate_mass_source_term", CategorySourceTerms,
		"Adds a mass source per field and control volume [kg/s].",
		ctx(), ptr("mass_source"), integer("n_fields"), integer("n_control_volumes")),
	hook("calculate_momentum_source_term", CategorySourceTerms,
		"Adds a momentum source per layer and face [N].",
		ctx(), ptr("momentum_source"), integer("n_layers"), integer("n_faces")),
	hook("calculate_energy_source_term", CategorySourceTerms,
		"Adds an energy source per layer and control volume [J/s].",
		ctx(), ptr("energy_source"), integer("n_layers"), integer("n_control_volumes")),
	hook("calculate_tracer_source_term", CategorySourceTerms,
		"Adds a tracer mass source per tracer and control volume [kg/s].",
		ctx(), ptr("phi_source"), integer("n_tracers"), integer("n_control_volumes")),

	hook("initialize_state_variables_calculator", CategoryStateVariables,
		"Prepares the state variable calculator of phases added by the plugin.",
		ctx(), ptr("P"), ptr("T"), ptr("T_mix"), integer("n_control_volumes"), integer("n_layers")),
	hook("finalize_state_variables_calculator", CategoryStateVariables,
		"Releases data allocated by the state variable calculator.",
		ctx()),
	hook("calculate_state_variable", CategoryStateVariables,
		"Computes a state variable of a phase added by the plugin.",
		ctx(), ptr("P"), ptr("T"), integer("n_control_volumes"), integer("phase_id"), integer("property_id"), ptr("output")),
	hook("calculate_phase_pair_state_variable", CategoryStateVariables,
		"Computes a state variable of a pair of phases, such as interfacial tension.",
		ctx(), ptr("P"), ptr("T_mix"), integer("n_control_volumes"), integer("phase1_id"), integer("phase2_id"), integer("property_id"), ptr("output")),

	hook("initialize_particle_diameter_of_solids_fields", CategorySolids,
		"Sets the initial particle diameter of a solid field.",
		ctx(), ptr("particle_diameter"), integer("n_control_volumes"), integer("solid_field_id")),
	hook("update_particle_diameter_of_solids_fields", CategorySolids,
		"Updates the particle diameter of a solid field.",
		ctx(), ptr("particle_diameter"), integer("n_control_volumes"), integer("solid_field_id")),
	hook("calculate_slip_velocity", CategorySolids,
		"Computes the slip velocity between the solid field and the continuous field.",
		ctx(), ptr("U_fields"), ptr("alpha_f"), ptr("d_disp_fields"), ptr("P"), ptr("rho_f"), ptr("mu_f"), ptr("sin_theta_f"), ptr("delta_x_f")),
	hook("calculate_slurry_viscosity", CategorySolids,
		"Computes the viscosity of a layer carrying solids.",
		ctx(), ptr("alpha_f"), ptr("mu_f"), ptr("mu_f_layer")),

	hook("initialize_mass_fraction_of_tracer", CategoryTracers,
		"Sets the initial mass fraction of a plugin tracer.",
		ctx(), ptr("phi_initial"), integer("tracer_index")),
	hook("calculate_mass_fraction_of_tracer_in_phase", CategoryTracers,
		"Computes the tracer mass fraction in a phase.",
		ctx(), ptr("phi"), ptr("phi_phase"), integer("tracer_index"), integer("phase_index"), integer("n_control_volumes")),
	hook("calculate_mass_fraction_of_tracer_in_field", CategoryTracers,
		"Computes the tracer mass fraction in a field.",
		ctx(), ptr("phi_phase"), ptr("phi_field"), integer("tracer_index"), integer("field_index"), integer("phase_index_of_field"), integer("n_control_volumes")),
	hook("set_prescribed_boundary_condition_of_mass_fraction_of_tracer", CategoryTracers,
		"Sets the prescribed boundary mass fraction of a tracer.",
		ctx(), ptr("phi_presc"), integer("tracer_index")),
	hook("update_boundary_condition_of_mass_fraction_of_tracer", CategoryTracers,
		"Updates the boundary mass fraction of a tracer.",
		ctx(), ptr("phi_presc"), integer("tracer_index"), ptr("vol_frac_bound"), integer("n_fields")),

	hook("friction_factor", CategoryExtras,
		"Computes a wall friction factor.",
		integer("v1"), integer("v2")),
	{
		name:     "env_temperature",
		category: CategoryExtras,
		params:   []Param{floating("v3"), floating("v4")},
		returns:  "float",
		summary:  "Computes the environment temperature.",
	},
	{
		name:     "calculate_entrained_liquid_fraction",
		category: CategoryExtras,
		params:   []Param{pair("U_S"), pair("rho"), pair("mu"), double("sigma"), double("D"), double("theta")},
		returns:  "double",
		summary:  "Computes the entrained liquid fraction of annular flow in the unit cell model.",
	},
}

// All returns every native hook in catalog order.
func All() []Hook { return append([]Hook(nil), catalog...) }

// Lookup finds a hook by name, with or without the HOOK_ prefix.
func Lookup(name string) (Hook, bool) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(strings.ToUpper(name), "HOOK_") {
		name = strings.ToLower(name[len("HOOK_"):])
	}
	for _, h := range catalog {
		if h.name == name {
			return h, true
		}
	}
	return Hook{}, false
}

// ByCategory returns the hooks of one category in catalog order.
func ByCategory(category Category) []Hook {
	var out []Hook
	for _, h := range catalog {
		if h.category == category {
			out = append(out, h)
		}
	}
	return out
}

// GUIHook is a hook answered by the plugin's Go registration instead of
// native code.
type GUIHook struct {
	Name    string
	Answer  string
	Summary string
}

var guiCatalog = []GUIHook{
	{
		Name:    "alfasim_get_data_model_type",
		Answer:  "models",
		Summary: "Models the plugin contributes to the application tree.",
	},
	{
		Name:    "alfasim_get_additional_variables",
		Answer:  "variables",
		Summary: "Secondary variables the plugin adds to the simulation.",
	},
	{
		Name:    "alfasim_get_status",
		Answer:  "status",
		Summary: "Warnings and errors shown on the status monitor for the current configuration.",
	},
}

// GUIHooks returns the application-side hooks.
func GUIHooks() []GUIHook { return append([]GUIHook(nil), guiCatalog...) }
