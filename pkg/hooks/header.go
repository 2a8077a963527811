package hooks

import (
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"
)

const headerSource = `{% autoescape off %}#ifndef {{ guard }}
#define {{ guard }}

/* Generated by alfasim-sdk for plugin {{ plugin }}. Do not edit. */

#if defined(_WIN32)
#define ALFASIM_HOOK_EXPORT extern "C" __declspec(dllexport)
#else
#define ALFASIM_HOOK_EXPORT extern "C" __attribute__((visibility("default")))
#endif

enum error_code
{
{% for status in statuses %}    {{ status.Name }}={{ status.Code }}{% if not forloop.Last %},{% endif %} /*!< {{ status.Description }} */
{% endfor %}};
{% for group in groups %}
/* {{ group.Category }} */
{% for hook in group.Hooks %}
/* {{ hook.Summary }} */
#define {{ hook.Macro }}({{ hook.ParamNames }}) ALFASIM_HOOK_EXPORT {{ hook.Prototype }}
{% endfor %}{% endfor %}
#endif
{% endautoescape %}`

var headerTemplate = pongo2.Must(pongo2.FromString(headerSource))

type statusView struct {
	Name        string
	Code        int
	Description string
}

type hookView struct {
	Summary    string
	Macro      string
	ParamNames string
	Prototype  string
}

type groupView struct {
	Category string
	Hooks    []hookView
}

// RenderHeader writes the C header declaring a HOOK_* macro for every native
// hook, grouped by category, plus the status code enum.
func RenderHeader(w io.Writer, plugin string) error {
	plugin = strings.TrimSpace(plugin)
	if plugin == "" {
		return fmt.Errorf("hooks: render header: plugin name is required")
	}

	statuses := Statuses()
	statusViews := make([]statusView, len(statuses))
	for i, code := range statuses {
		statusViews[i] = statusView{Name: code.String(), Code: int(code), Description: code.Description()}
	}

	var groups []groupView
	for _, category := range Categories() {
		group := groupView{Category: string(category)}
		for _, h := range ByCategory(category) {
			group.Hooks = append(group.Hooks, hookView{
				Summary:    h.Summary(),
				Macro:      h.Macro(),
				ParamNames: h.paramNames(),
				Prototype:  h.Prototype(),
			})
		}
		groups = append(groups, group)
	}

	err := headerTemplate.ExecuteWriter(pongo2.Context{
		"guard":    "_H_" + strings.ToUpper(sanitizeIdent(plugin)) + "_HOOKS",
		"plugin":   plugin,
		"statuses": statusViews,
		"groups":   groups,
	}, w)
	if err != nil {
		return fmt.Errorf("hooks: render header: %w", err)
	}
	return nil
}

func sanitizeIdent(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
