package display

import (
	"github.com/goliatone/go-cardform/pkg/card"
	theme "github.com/goliatone/go-theme"
)

// ThemeName identifies the card preview theme family.
const ThemeName = "cardform"

// Themes maps a theme variant ("visa", "master", "default") to its renderer
// configuration.
type Themes map[string]*theme.RendererConfig

// DefaultThemes returns the built-in card palettes.
func DefaultThemes() Themes {
	return Themes{
		"visa": variant("visa", map[string]string{
			"--card-bg":     "linear-gradient(135deg, #1a1f71 0%, #2e3aa8 100%)",
			"--card-fg":     "#ffffff",
			"--card-accent": "#f7b600",
		}),
		"master": variant("master", map[string]string{
			"--card-bg":     "linear-gradient(135deg, #222222 0%, #3a3a3a 100%)",
			"--card-fg":     "#ffffff",
			"--card-accent": "#eb001b",
		}),
		"default": variant("default", map[string]string{
			"--card-bg":     "linear-gradient(135deg, #5b6470 0%, #8a94a3 100%)",
			"--card-fg":     "#f4f6f8",
			"--card-accent": "#c9d1db",
		}),
	}
}

func variant(name string, vars map[string]string) *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   ThemeName,
		Variant: name,
		Tokens: map[string]string{
			"logo": name,
		},
		CSSVars: vars,
	}
}

// For resolves the configuration for network, falling back to "default".
func (t Themes) For(network card.Network) *theme.RendererConfig {
	if len(t) == 0 {
		return nil
	}
	if cfg, ok := t[PresentationFor(network).Logo]; ok && cfg != nil {
		return cfg
	}
	return t["default"]
}
