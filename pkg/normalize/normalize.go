// Package normalize maps raw field strings to typed JSON values and folds
// repeated keys into arrays.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/formjson/pkg/formdata"
)

// Apply folds entries left to right in encounter order. The first occurrence
// of a key stores its coerced value directly; later occurrences convert the
// stored value into a slice and append, flattening one level when the stored
// value is already a slice.
func Apply(entries []formdata.Entry) *formdata.Form {
	form := formdata.New()
	for _, entry := range entries {
		value := Coerce(entry.Value)
		stored, exists := form.Get(entry.Key)
		if !exists {
			form.Set(entry.Key, value)
			continue
		}
		switch existing := stored.(type) {
		case []any:
			form.Set(entry.Key, append(existing, value))
		default:
			form.Set(entry.Key, []any{existing, value})
		}
	}
	return form
}

// Coerce maps a raw field value to its typed JSON form. Precedence on the
// trimmed value: canonical number, then the case-insensitive literals
// true/false/null, then the trimmed string itself.
func Coerce(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if number, ok := coerceNumber(trimmed); ok {
		return number
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	return trimmed
}

// coerceNumber promotes value to a number only when re-stringifying the
// parsed number reproduces the input exactly, via either a float-preserving
// or an integer-truncating round-trip. Unambiguous decimal literals like
// "42" and "3.14" pass; "007", "1e3", and the empty string stay strings.
// Infinities and NaN are rejected outright since they have no JSON form.
func coerceNumber(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	if strconv.FormatFloat(parsed, 'f', -1, 64) == value {
		return parsed, true
	}
	truncated := math.Trunc(parsed)
	if strconv.FormatFloat(truncated, 'f', -1, 64) == value {
		return truncated, true
	}
	return 0, false
}
