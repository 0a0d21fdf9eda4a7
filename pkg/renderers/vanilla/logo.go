package vanilla

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	logoPolicyOnce sync.Once
	logoPolicy     *bluemonday.Policy
)

// sanitizeLogo strips anything from SVG markup that is not plain vector
// drawing, so custom logo bundles cannot inject script or handlers.
func sanitizeLogo(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(logoSanitizer().Sanitize(trimmed))
}

func logoSanitizer() *bluemonday.Policy {
	logoPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "circle", "rect", "text", "title")

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "rx", "ry", "width", "height",
				"fill", "fill-opacity", "stroke", "stroke-width", "class",
			).OnElements(el)
		}
		policy.AllowAttrs(
			"x", "y", "fill", "font-family", "font-size", "font-weight", "font-style",
		).OnElements("text")
		policy.AllowAttrs("fill", "class").OnElements("g")

		logoPolicy = policy
	})
	return logoPolicy
}

// loadLogos reads <name>.svg for every name from files and sanitizes it.
// Missing logos are skipped; the template falls back to the label.
func loadLogos(files fs.FS, names ...string) map[string]string {
	logos := make(map[string]string, len(names))
	if files == nil {
		return logos
	}
	for _, name := range names {
		data, err := fs.ReadFile(files, "logos/"+name+".svg")
		if err != nil {
			continue
		}
		if cleaned := sanitizeLogo(string(data)); cleaned != "" {
			logos[name] = cleaned
		}
	}
	return logos
}
