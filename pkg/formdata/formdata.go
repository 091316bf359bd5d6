// Package formdata defines the converted form document shared by the
// extraction, normalization, and highlighting stages. A Form is an
// insertion-ordered key/value mapping: ordinary fields keep the order they
// were first seen in the markup, and the reserved metadata keys are written
// last. Values are limited to the JSON primitives the normalizer produces
// (string, float64, bool, nil) plus one level of []any aggregation for
// repeated keys.
package formdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Reserved keys carry form metadata alongside user fields. A user field that
// happens to share one of these names is silently overwritten when the
// metadata is merged (last-write-wins, metadata is written after
// aggregation).
const (
	ReservedPrefix = "__form__"

	KeyAction = ReservedPrefix + "action"
	KeyMethod = ReservedPrefix + "method"
)

// Entry is a single raw field/value pair in document order. Duplicate keys
// may appear multiple times in sequence.
type Entry struct {
	Key   string
	Value string
}

// Metadata describes where and how the form submits. Method is always
// uppercased with GET as the default.
type Metadata struct {
	Action string
	Method string
}

// Form is the converted document: field keys mapped to normalized values,
// preserving first-seen insertion order. Re-assigning an existing key keeps
// its original position, matching insertion-order object semantics.
type Form struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New returns an empty form.
func New() *Form {
	return &Form{fields: orderedmap.New[string, any]()}
}

// Set stores value under key, keeping the key's original position when it
// already exists.
func (f *Form) Set(key string, value any) {
	f.fields.Set(key, value)
}

// Get returns the value stored under key.
func (f *Form) Get(key string) (any, bool) {
	return f.fields.Get(key)
}

// Len reports the number of keys, reserved metadata included.
func (f *Form) Len() int {
	if f == nil || f.fields == nil {
		return 0
	}
	return f.fields.Len()
}

// Keys returns all keys in insertion order.
func (f *Form) Keys() []string {
	keys := make([]string, 0, f.Len())
	f.Each(func(key string, _ any) {
		keys = append(keys, key)
	})
	return keys
}

// Each visits every key/value pair in insertion order.
func (f *Form) Each(fn func(key string, value any)) {
	if f == nil || f.fields == nil {
		return
	}
	for pair := f.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Metadata reads the reserved keys back out of the form.
func (f *Form) Metadata() Metadata {
	meta := Metadata{}
	if action, ok := f.Get(KeyAction); ok {
		meta.Action, _ = action.(string)
	}
	if method, ok := f.Get(KeyMethod); ok {
		meta.Method, _ = method.(string)
	}
	return meta
}

// SetMetadata merges the reserved metadata keys into the form. It runs after
// field aggregation so colliding user fields are overwritten.
func (f *Form) SetMetadata(meta Metadata) {
	f.Set(KeyAction, meta.Action)
	f.Set(KeyMethod, meta.Method)
}

// JSON renders the canonical two-space indented document. JSON strings pass
// through without HTML escaping; the highlighter escapes markup-sensitive
// characters itself before tokenizing.
func (f *Form) JSON() string {
	var buf bytes.Buffer
	f.writeObject(&buf)
	return buf.String()
}

// MarshalJSON emits the canonical indented document.
func (f *Form) MarshalJSON() ([]byte, error) {
	return []byte(f.JSON()), nil
}

func (f *Form) writeObject(buf *bytes.Buffer) {
	if f.Len() == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{\n")
	for pair := f.fields.Oldest(); pair != nil; pair = pair.Next() {
		buf.WriteString("  ")
		writeString(buf, pair.Key)
		buf.WriteString(": ")
		writeValue(buf, pair.Value, 1)
		if pair.Next() != nil {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
}

func writeValue(buf *bytes.Buffer, value any, depth int) {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case float64:
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		buf.WriteString(strconv.Itoa(v))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case string:
		writeString(buf, v)
	case []any:
		writeArray(buf, v, depth)
	default:
		// The pipeline never produces other types; fall back to the stock
		// encoder for values callers stored manually.
		encoded, err := json.Marshal(v)
		if err != nil {
			buf.WriteString("null")
			return
		}
		buf.Write(encoded)
	}
}

func writeArray(buf *bytes.Buffer, items []any, depth int) {
	if len(items) == 0 {
		buf.WriteString("[]")
		return
	}
	indent := strings.Repeat("  ", depth)
	buf.WriteString("[\n")
	for i, item := range items {
		buf.WriteString(indent)
		buf.WriteString("  ")
		writeValue(buf, item, depth+1)
		if i < len(items)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte(']')
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}
