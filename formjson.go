// Package formjson converts HTML form markup, raw or entity-escaped, into a
// normalized JSON document and renders that document with token-class
// syntax highlighting. The root package is a thin facade over the pipeline;
// presentation shells live under pkg/shells.
package formjson

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/formjson/pkg/extract"
	"github.com/goliatone/formjson/pkg/formdata"
	"github.com/goliatone/formjson/pkg/highlight"
	"github.com/goliatone/formjson/pkg/pipeline"
)

// Form is the converted document: insertion-ordered field keys mapped to
// normalized values plus the reserved metadata keys.
type Form = formdata.Form

// Entry is a raw field/value pair in document order.
type Entry = formdata.Entry

// Metadata describes where and how the form submits.
type Metadata = formdata.Metadata

// EmptyInputError reports blank input markup.
type EmptyInputError = extract.EmptyInputError

// FormNotFoundError reports that no element matched the form selector.
type FormNotFoundError = extract.FormNotFoundError

// Option configures the conversion pipeline.
type Option = pipeline.Option

// Classes names the span classes emitted by Highlight.
type Classes = highlight.Classes

// WithSelector overrides the default "form" selector.
func WithSelector(selector string) Option {
	return pipeline.WithSelector(selector)
}

// WithLogger routes conversion diagnostics, such as skipped file fields,
// through the supplied logger.
func WithLogger(logger *zap.Logger) Option {
	return pipeline.WithLogger(logger)
}

// Convert parses the markup and returns the normalized form. It is the
// simplest entry point for callers that just want the converted document.
func Convert(input string, options ...Option) (*Form, error) {
	return ConvertContext(context.Background(), input, options...)
}

// ConvertContext is Convert with an explicit context.
func ConvertContext(ctx context.Context, input string, options ...Option) (*Form, error) {
	return pipeline.New(options...).Convert(ctx, pipeline.Request{Input: input})
}

// Highlight renders the form as a markup fragment with classed token spans.
func Highlight(form *Form, options ...highlight.Option) string {
	return highlight.Highlight(form, options...)
}

// DefaultClasses returns the stock highlight class set.
func DefaultClasses() Classes {
	return highlight.DefaultClasses()
}
