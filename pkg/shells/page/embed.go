package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/widget.css
var embeddedAssets embed.FS

// TemplatesFS exposes the embedded widget templates so callers can reuse or
// extend them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Stylesheet returns the shared widget stylesheet injected once per host
// document.
func Stylesheet() string {
	data, err := embeddedAssets.ReadFile("assets/widget.css")
	if err != nil {
		return ""
	}
	return string(data)
}
