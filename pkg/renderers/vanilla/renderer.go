package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardform/pkg/display"
	"github.com/goliatone/go-cardform/pkg/render"
	rendertemplate "github.com/goliatone/go-cardform/pkg/render/template"
	gotemplate "github.com/goliatone/go-cardform/pkg/render/template/gotemplate"
)

const cardTemplate = "templates/card.tpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	assetsFS         fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must contain templates/card.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithAssetsFS replaces the logo bundle. Logos are read from
// logos/<visa|master|default>.svg and sanitized before use.
func WithAssetsFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.assetsFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithInlineStyles embeds the default stylesheet in every rendered fragment.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// Renderer produces an HTML fragment of the card preview.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	logos      map[string]string
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetsFS: AssetsFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates: renderer,
		logos:     loadLogos(cfg.assetsFS, "visa", "master", "default"),
	}
	if cfg.inlineStyles {
		r.stylesheet = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, view display.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	logo := view.Present.Logo
	if cfg := options.ResolveTheme(view); cfg != nil && cfg.Tokens["logo"] != "" {
		logo = cfg.Tokens["logo"]
	}

	result, err := r.templates.RenderTemplate(cardTemplate, map[string]any{
		"view":       view,
		"present":    view.Present,
		"network":    view.Network.String(),
		"opacity":    strconv.FormatFloat(view.Present.Opacity, 'f', -1, 64),
		"style":      styleVars(options, view),
		"logo":       r.logos[logo],
		"title":      options.Title,
		"messages":   options.Messages,
		"commit_url": options.CommitURL,
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// styleVars flattens the theme CSS variables into an inline style value,
// sorted by name so output is stable.
func styleVars(options render.RenderOptions, view display.View) string {
	cfg := options.ResolveTheme(view)
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[name])
		b.WriteByte(';')
	}
	return b.String()
}
