// Package highlight serializes a converted form to canonical JSON text and
// wraps its tokens in classed spans for markup injection. Serialization is
// deterministic: two-space indentation, insertion order, no HTML escaping
// inside JSON strings. The whole text is then escaped for markup safety and
// tokenized by four ordered single-pass replacements: object keys, string
// values following a colon, bare numeric/boolean/null literals, and
// structural punctuation.
package highlight

import (
	"regexp"
	"strings"

	"github.com/goliatone/formjson/pkg/formdata"
)

// Option customises a highlight invocation.
type Option func(*config)

type config struct {
	classes  Classes
	sanitize bool
}

// WithClasses overrides the emitted span classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithSanitizer runs the final fragment through a strict span-only
// sanitation policy before returning it.
func WithSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = true
	}
}

var (
	// Keys sit at line start in the indented document. Quoted tokens
	// exclude a raw < so later passes can never match across an injected
	// span boundary; the text is entity-escaped before tokenizing, so a
	// legitimate < cannot occur inside a JSON string here.
	keyPattern = regexp.MustCompile(`(?m)^(\s*)("(?:[^"\\<]|\\.)*")(\s*:)`)

	// String values immediately follow a colon. Array elements are not
	// colon-adjacent and intentionally stay unwrapped.
	stringPattern = regexp.MustCompile(`(:\s*)("(?:[^"\\<]|\\.)*")`)

	// Bare literals end their line (with an optional trailing comma),
	// either as a field value after a colon or as an array element after
	// indentation. The end-of-line anchor keeps digits inside already
	// wrapped strings from matching.
	literalPattern = regexp.MustCompile(`(?m)(^\s*|[:\[,]\s*)(-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?|true|false|null)(,?)$`)

	punctPattern = regexp.MustCompile(`[{}\[\],]`)
)

// Highlight renders the form as a markup fragment. Calling it twice with
// the same form yields byte-identical output; stripping the span wrappers
// and unescaping &amp;, &lt;, &gt; reproduces the canonical JSON text.
func Highlight(form *formdata.Form, options ...Option) string {
	cfg := config{classes: DefaultClasses()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	text := escapeMarkup(form.JSON())
	text = wrapQuoted(text, keyPattern, cfg.classes.Key, cfg.classes.MetaKey)
	text = wrapQuoted(text, stringPattern, cfg.classes.String, cfg.classes.MetaString)
	text = literalPattern.ReplaceAllString(text,
		`$1<span class="`+cfg.classes.Literal+`">$2</span>$3`)
	text = punctPattern.ReplaceAllString(text,
		`<span class="`+cfg.classes.Punct+`">$0</span>`)

	if cfg.sanitize {
		text = sanitizeFragment(text)
	}
	return text
}

// escapeMarkup escapes the three markup-sensitive characters, ampersand
// first, so the tokenizing passes operate on markup-safe text.
func escapeMarkup(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

// wrapQuoted wraps the quoted token captured by pattern, picking the meta
// class when the token carries the reserved metadata prefix.
func wrapQuoted(text string, pattern *regexp.Regexp, plain, meta string) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := pattern.FindStringSubmatch(match)
		class := plain
		if strings.HasPrefix(parts[2], `"`+formdata.ReservedPrefix) {
			class = meta
		}
		suffix := ""
		if len(parts) > 3 {
			suffix = parts[3]
		}
		return parts[1] + `<span class="` + class + `">` + parts[2] + `</span>` + suffix
	})
}
