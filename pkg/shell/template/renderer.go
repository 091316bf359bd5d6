// Package template declares the rendering contract presentation shells use
// for their markup. Engines resolve named templates from a bundle or render
// inline template content directly.
package template

import "io"

// TemplateRenderer renders named or inline templates. Render dispatches to
// RenderString when name looks like template content and to RenderTemplate
// otherwise; any supplied writers receive a copy of the output.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}
