package model

import (
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// normalizeIcon keeps icon file names verbatim and sanitizes inline SVG
// markup. Markup that sanitizes to nothing is rejected.
func normalizeIcon(raw string) (string, error) {
	icon := strings.TrimSpace(raw)
	if !strings.HasPrefix(icon, "<") {
		return icon, nil
	}
	cleaned := strings.TrimSpace(svgSanitizer().Sanitize(icon))
	if !strings.HasPrefix(cleaned, "<svg") {
		return "", errors.New("icon markup must be an <svg> element")
	}
	return cleaned, nil
}

func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements(append([]string{"svg", "g", "title", "desc", "defs"}, shapes...)...)

		policy.AllowAttrs("xmlns", "viewBox", "width", "height", "fill", "stroke", "stroke-width").OnElements("svg")
		policy.AllowAttrs("id", "fill", "stroke", "transform").OnElements("g")
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2",
			"points", "width", "height", "fill", "stroke", "stroke-width", "transform",
		).OnElements(shapes...)

		svgPolicy = policy
	})
	return svgPolicy
}
