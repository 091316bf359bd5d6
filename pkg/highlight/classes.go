package highlight

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Classes names the span classes emitted for each token category. The
// defaults are the wire contract consumed by the page shell stylesheet;
// override them when embedding into a host with its own design system.
// Keys and string values whose quoted token starts with the reserved
// __form__ prefix use the Meta variants.
type Classes struct {
	Key        string `yaml:"key" json:"key"`
	MetaKey    string `yaml:"metaKey" json:"metaKey"`
	String     string `yaml:"string" json:"string"`
	MetaString string `yaml:"metaString" json:"metaString"`
	Literal    string `yaml:"literal" json:"literal"`
	Punct      string `yaml:"punct" json:"punct"`
}

// DefaultClasses returns the stock class set.
func DefaultClasses() Classes {
	return Classes{
		Key:        "fj-key",
		MetaKey:    "fj-key-meta",
		String:     "fj-string",
		MetaString: "fj-string-meta",
		Literal:    "fj-literal",
		Punct:      "fj-punct",
	}
}

// ClassesFromYAML parses a YAML override document. Empty fields keep the
// defaults; populated fields must be plain class tokens.
func ClassesFromYAML(raw []byte) (Classes, error) {
	overrides := Classes{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return Classes{}, fmt.Errorf("highlight: parse classes document: %w", err)
	}
	merged := DefaultClasses().merge(overrides)
	if err := merged.validate(); err != nil {
		return Classes{}, err
	}
	return merged, nil
}

func (c Classes) merge(overrides Classes) Classes {
	apply := func(dst *string, value string) {
		if strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	apply(&c.Key, overrides.Key)
	apply(&c.MetaKey, overrides.MetaKey)
	apply(&c.String, overrides.String)
	apply(&c.MetaString, overrides.MetaString)
	apply(&c.Literal, overrides.Literal)
	apply(&c.Punct, overrides.Punct)
	return c
}

func (c Classes) validate() error {
	for _, class := range []string{c.Key, c.MetaKey, c.String, c.MetaString, c.Literal, c.Punct} {
		if !validClassToken(class) {
			return fmt.Errorf("highlight: class %q is not a plain class token", class)
		}
	}
	return nil
}

// validClassToken accepts space-separated class names made of letters,
// digits, hyphens, and underscores. Anything else could break out of the
// span's class attribute.
func validClassToken(class string) bool {
	if strings.TrimSpace(class) == "" {
		return false
	}
	for _, r := range class {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == ' ':
		default:
			return false
		}
	}
	return true
}
