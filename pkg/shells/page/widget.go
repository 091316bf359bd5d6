// Package page is the HTML presentation shell. It mounts a conversion
// widget into a host document, injects the shared stylesheet at most once
// per document, and renders pipeline results or errors back into the
// container. The core stays untouched: all host interaction goes through
// the shell contracts.
package page

import (
	"context"
	"fmt"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/formjson/pkg/highlight"
	"github.com/goliatone/formjson/pkg/pipeline"
	"github.com/goliatone/formjson/pkg/shell"
	shelltemplate "github.com/goliatone/formjson/pkg/shell/template"
	"github.com/goliatone/formjson/pkg/shell/template/gotemplate"
)

const (
	styleKey     = "formjson-widget"
	templateName = "templates/widget.tmpl"

	copyLabel     = "Copy JSON"
	copiedLabel   = "Copied!"
	copyFeedback  = 2 * time.Second
	placeholderEg = `<form action="/api/x" method="post"><input name="age" value="30"></form>`
)

// CleanupFunc detaches a mounted widget: it clears the container and
// removes the shared stylesheet when no other instance still needs it.
type CleanupFunc func()

// Option customises the widget configuration.
type Option func(*config)

type config struct {
	templates     shelltemplate.TemplateRenderer
	converter     *pipeline.Converter
	clipboard     shell.Clipboard
	classes       highlight.Classes
	logger        *zap.Logger
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	placeholder   string
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer shelltemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithConverter injects a preconfigured conversion pipeline.
func WithConverter(converter *pipeline.Converter) Option {
	return func(cfg *config) {
		if converter != nil {
			cfg.converter = converter
		}
	}
}

// WithClipboard supplies the host clipboard. Without one, Copy always falls
// back to the manual prompt.
func WithClipboard(clipboard shell.Clipboard) Option {
	return func(cfg *config) {
		cfg.clipboard = clipboard
	}
}

// WithClasses overrides the highlight span classes.
func WithClasses(classes highlight.Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithLogger routes widget diagnostics through the supplied logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithThemeSelector resolves widget CSS variables from a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithPlaceholder overrides the example markup shown in the empty input.
func WithPlaceholder(text string) Option {
	return func(cfg *config) {
		if text != "" {
			cfg.placeholder = text
		}
	}
}

// Widget is one mounted instance of the conversion shell.
type Widget struct {
	doc       shell.Document
	container shell.Container
	templates shelltemplate.TemplateRenderer
	converter *pipeline.Converter
	clipboard shell.Clipboard
	classes   highlight.Classes
	logger    *zap.Logger

	mu          sync.Mutex
	placeholder string
	input       string
	output      string
	lastJSON    string
	errMessage  string
	prompt      bool
	copied      bool
	revert      *time.Timer
}

var styles = shell.NewStyleRegistry()

// Mount renders the widget scaffold into the named container and injects
// the shared stylesheet once per document. The returned cleanup detaches
// the widget.
func Mount(doc shell.Document, containerID string, options ...Option) (*Widget, CleanupFunc, error) {
	cfg := config{
		converter:   pipeline.New(),
		classes:     highlight.DefaultClasses(),
		logger:      zap.NewNop(),
		placeholder: placeholderEg,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, nil, fmt.Errorf("page: configure template renderer: %w", err)
		}
		cfg.templates = engine
	}

	container, err := doc.Container(containerID)
	if err != nil {
		return nil, nil, fmt.Errorf("page: resolve container %q: %w", containerID, err)
	}

	css := Stylesheet()
	themeCSS, err := resolveThemeCSS(cfg.themeSelector, cfg.themeName, cfg.themeVariant)
	if err != nil {
		return nil, nil, err
	}
	if themeCSS != "" {
		css = css + "\n" + themeCSS
	}
	if err := styles.Acquire(doc, styleKey, css); err != nil {
		return nil, nil, fmt.Errorf("page: inject stylesheet: %w", err)
	}

	w := &Widget{
		doc:         doc,
		container:   container,
		templates:   cfg.templates,
		converter:   cfg.converter,
		clipboard:   cfg.clipboard,
		classes:     cfg.classes,
		logger:      cfg.logger,
		placeholder: cfg.placeholder,
	}
	if err := w.render(); err != nil {
		_ = styles.Release(doc, styleKey)
		return nil, nil, err
	}

	cleanup := func() {
		w.mu.Lock()
		if w.revert != nil {
			w.revert.Stop()
			w.revert = nil
		}
		w.mu.Unlock()
		if err := w.container.Clear(); err != nil {
			w.logger.Warn("clearing widget container failed", zap.Error(err))
		}
		if err := styles.Release(doc, styleKey); err != nil {
			w.logger.Warn("removing widget stylesheet failed", zap.Error(err))
		}
	}
	return w, cleanup, nil
}

// Convert runs the pipeline on input and injects the highlighted result
// into the container. Pipeline errors render a distinctly styled error box
// instead of leaving the widget blank; the error is also returned for
// programmatic callers.
func (w *Widget) Convert(ctx context.Context, input string) error {
	form, err := w.converter.Convert(ctx, pipeline.Request{Input: input})

	w.mu.Lock()
	w.input = input
	w.prompt = false
	if err != nil {
		w.errMessage = err.Error()
		w.output = ""
		w.lastJSON = ""
	} else {
		w.errMessage = ""
		w.output = highlight.Highlight(form, highlight.WithClasses(w.classes))
		w.lastJSON = form.JSON()
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("conversion failed", zap.Error(err))
		if renderErr := w.render(); renderErr != nil {
			return renderErr
		}
		return err
	}
	return w.render()
}

// JSON returns the canonical text of the last successful conversion.
func (w *Widget) JSON() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastJSON
}

// Copy writes the last converted document to the host clipboard. Failure is
// non-fatal: the widget shows a manual-copy prompt instead of propagating.
func (w *Widget) Copy(ctx context.Context) error {
	w.mu.Lock()
	text := w.lastJSON
	clipboard := w.clipboard
	w.mu.Unlock()

	if text == "" {
		return nil
	}

	var writeErr error
	if clipboard == nil {
		writeErr = fmt.Errorf("page: no clipboard configured")
	} else {
		writeErr = clipboard.WriteText(ctx, text)
	}

	w.mu.Lock()
	if writeErr != nil {
		w.prompt = true
		w.copied = false
	} else {
		w.prompt = false
		w.copied = true
		if w.revert != nil {
			w.revert.Stop()
		}
		// Cosmetic label revert only; no functional state depends on it.
		w.revert = time.AfterFunc(copyFeedback, func() {
			w.mu.Lock()
			w.copied = false
			w.mu.Unlock()
			if err := w.render(); err != nil {
				w.logger.Warn("reverting copy label failed", zap.Error(err))
			}
		})
	}
	w.mu.Unlock()

	if writeErr != nil {
		w.logger.Warn("clipboard write failed", zap.Error(writeErr))
	}
	return w.render()
}

func (w *Widget) render() error {
	w.mu.Lock()
	label := copyLabel
	if w.copied {
		label = copiedLabel
	}
	data := map[string]any{
		"placeholder": w.placeholder,
		"input":       w.input,
		"output":      w.output,
		"error":       w.errMessage,
		"prompt":      w.prompt,
		"copy_label":  label,
	}
	w.mu.Unlock()

	markup, err := w.templates.RenderTemplate(templateName, data)
	if err != nil {
		return fmt.Errorf("page: render widget template: %w", err)
	}
	return w.container.SetContent(markup)
}
