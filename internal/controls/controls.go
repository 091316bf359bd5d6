// Package controls implements the submittable-control rule table applied
// when walking a parsed form: which elements contribute entries, with which
// values, following standard form-submission semantics.
package controls

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/goliatone/formjson/pkg/formdata"
)

// Collect walks the form's controls in document order and returns the
// entries a submission would carry. Only named, non-disabled controls
// contribute; checkboxes and radios only when checked; buttons never (no
// submit event occurs here, so there is no designated submitter). File
// inputs are skipped entirely with a diagnostic naming the field.
func Collect(form *goquery.Selection, logger *zap.Logger) []formdata.Entry {
	if logger == nil {
		logger = zap.NewNop()
	}

	var entries []formdata.Entry
	form.Find("input, select, textarea").Each(func(_ int, control *goquery.Selection) {
		name := strings.TrimSpace(control.AttrOr("name", ""))
		if name == "" || hasAttr(control, "disabled") {
			return
		}
		switch goquery.NodeName(control) {
		case "input":
			entries = collectInput(entries, control, name, logger)
		case "textarea":
			entries = append(entries, formdata.Entry{Key: name, Value: control.Text()})
		case "select":
			entries = collectSelect(entries, control, name)
		}
	})
	return entries
}

func collectInput(entries []formdata.Entry, control *goquery.Selection, name string, logger *zap.Logger) []formdata.Entry {
	inputType := strings.ToLower(strings.TrimSpace(control.AttrOr("type", "text")))
	switch inputType {
	case "submit", "button", "reset", "image":
		return entries
	case "file":
		logger.Warn("skipping file input: binary payloads are not converted",
			zap.String("field", name))
		return entries
	case "checkbox", "radio":
		if !hasAttr(control, "checked") {
			return entries
		}
		// "on" is the default submission value for checkable controls.
		return append(entries, formdata.Entry{Key: name, Value: control.AttrOr("value", "on")})
	}
	return append(entries, formdata.Entry{Key: name, Value: control.AttrOr("value", "")})
}

func collectSelect(entries []formdata.Entry, control *goquery.Selection, name string) []formdata.Entry {
	options := control.Find("option")
	if options.Length() == 0 {
		return entries
	}

	if hasAttr(control, "multiple") {
		options.Each(func(_ int, option *goquery.Selection) {
			if hasAttr(option, "selected") && !hasAttr(option, "disabled") {
				entries = append(entries, formdata.Entry{Key: name, Value: optionValue(option)})
			}
		})
		return entries
	}

	selected := options.FilterFunction(func(_ int, option *goquery.Selection) bool {
		return hasAttr(option, "selected") && !hasAttr(option, "disabled")
	})
	if selected.Length() > 0 {
		// The last selected option wins in a single select.
		return append(entries, formdata.Entry{Key: name, Value: optionValue(selected.Last())})
	}
	// No explicit selection: a single select submits its first option.
	return append(entries, formdata.Entry{Key: name, Value: optionValue(options.First())})
}

// optionValue resolves an option's submission value: the value attribute
// when present, otherwise the option text with surrounding whitespace
// stripped.
func optionValue(option *goquery.Selection) string {
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(option.Text())
}

func hasAttr(sel *goquery.Selection, name string) bool {
	_, ok := sel.Attr(name)
	return ok
}
