// Package pipeline composes decoding, extraction, normalization, and
// metadata merging into a single conversion entry point. Converters hold
// configuration only; every call rebuilds its result from scratch, so
// concurrent invocations are fully independent.
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/formjson/pkg/extract"
	"github.com/goliatone/formjson/pkg/formdata"
	"github.com/goliatone/formjson/pkg/highlight"
	"github.com/goliatone/formjson/pkg/normalize"
)

// Option customises the converter configuration.
type Option func(*Converter)

// WithSelector overrides the converter-wide form selector.
func WithSelector(selector string) Option {
	return func(c *Converter) {
		if selector != "" {
			c.selector = selector
		}
	}
}

// WithLogger routes pipeline diagnostics through the supplied logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHighlightClasses overrides the span classes used by Highlight.
func WithHighlightClasses(classes highlight.Classes) Option {
	return func(c *Converter) {
		c.classes = classes
	}
}

// Converter runs the conversion pipeline with a fixed configuration.
type Converter struct {
	selector string
	logger   *zap.Logger
	classes  highlight.Classes
}

// New constructs a Converter applying any provided options. Missing pieces
// fall back to the defaults: the "form" selector, a no-op logger, and the
// stock highlight classes.
func New(options ...Option) *Converter {
	c := &Converter{
		selector: extract.DefaultSelector,
		logger:   zap.NewNop(),
		classes:  highlight.DefaultClasses(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Request describes a single conversion.
type Request struct {
	// Input holds raw or entity-escaped form markup.
	Input string

	// Selector overrides the converter's form selector when set.
	Selector string
}

// Convert executes decode → parse → extract → normalize → metadata merge
// and returns the complete converted form. No partial result is ever
// returned: either the form converts fully or an error surfaces.
func (c *Converter) Convert(ctx context.Context, req Request) (*formdata.Form, error) {
	if ctx == nil {
		return nil, errors.New("pipeline: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selector := req.Selector
	if selector == "" {
		selector = c.selector
	}

	entries, meta, err := extract.Extract(req.Input, selector, extract.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	form := normalize.Apply(entries)
	form.SetMetadata(meta)
	return form, nil
}

// Highlight renders the form with the converter's configured classes.
func (c *Converter) Highlight(form *formdata.Form) string {
	return highlight.Highlight(form, highlight.WithClasses(c.classes))
}
