package page

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// resolveThemeCSS asks the selector for a theme selection and maps its
// manifest tokens onto CSS custom properties appended to the shared
// stylesheet, so widget colors follow the host theme.
func resolveThemeCSS(selector theme.ThemeSelector, name, variant string) (string, error) {
	if selector == nil {
		return "", nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return "", fmt.Errorf("page: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return "", nil
	}
	return cssVarsStyle(cssVarsFromTokens(selection.Manifest.Tokens)), nil
}

func cssVarsFromTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		vars[name] = value
	}
	return vars
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
