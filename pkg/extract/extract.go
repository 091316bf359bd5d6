// Package extract turns raw or HTML-entity-escaped form markup into an
// ordered field/value list plus form metadata. Markup is decoded with the
// full WHATWG entity table and parsed permissively, so malformed tags are
// recovered from instead of rejected. Values at this stage are still raw
// strings; coercion is the normalizer's job.
package extract

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	nethtml "golang.org/x/net/html"

	"github.com/goliatone/formjson/internal/controls"
	"github.com/goliatone/formjson/pkg/formdata"
)

// DefaultSelector locates the first form element in the document.
const DefaultSelector = "form"

// Option customises the extraction configuration.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger routes extraction diagnostics, such as skipped file fields,
// through the supplied logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Extract decodes input, parses it, locates the first element matching
// selector (DefaultSelector when empty), and returns the submittable
// field entries in document order together with the form metadata.
//
// Input captured from a JSON-string or logged context is tolerated: literal
// backslash-quote sequences are unescaped as a textual pre-pass, then HTML
// entities are decoded across the whole text so escaped markup like
// &lt;form&gt; becomes parseable.
func Extract(input, selector string, options ...Option) ([]formdata.Entry, formdata.Metadata, error) {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if strings.TrimSpace(input) == "" {
		return nil, formdata.Metadata{}, EmptyInputError{}
	}
	if selector == "" {
		selector = DefaultSelector
	}

	markup := html.UnescapeString(strings.ReplaceAll(input, `\"`, `"`))

	root, err := nethtml.Parse(strings.NewReader(markup))
	if err != nil {
		// The HTML parser recovers from malformed markup; this only trips
		// on reader failures, impossible with a string reader, but the
		// error path stays explicit.
		return nil, formdata.Metadata{}, fmt.Errorf("extract: parse markup: %w", err)
	}
	document := goquery.NewDocumentFromNode(root)

	form := document.Find(selector).First()
	if form.Length() == 0 {
		return nil, formdata.Metadata{}, FormNotFoundError{Selector: selector}
	}

	entries := controls.Collect(form, cfg.logger)
	meta := formdata.Metadata{
		Action: form.AttrOr("action", ""),
		Method: methodOrDefault(form.AttrOr("method", "")),
	}
	return entries, meta, nil
}

func methodOrDefault(method string) string {
	normalized := strings.ToUpper(strings.TrimSpace(method))
	if normalized == "" {
		return "GET"
	}
	return normalized
}
