// Package shell defines the contracts presentation shells use to talk to a
// host page: container lookup, keyed stylesheet management, and clipboard
// access. The core pipeline never touches these; hosts own lifecycle and
// event dispatch and call into the core through Convert and Highlight.
package shell

import "context"

// Container is a mount point inside a host document that renders markup
// fragments.
type Container interface {
	// SetContent replaces the container's markup.
	SetContent(markup string) error

	// Clear empties the container.
	Clear() error
}

// Document abstracts the host page so shells can mount without reaching for
// ambient global state.
type Document interface {
	// Container resolves a mount point by identifier.
	Container(id string) (Container, error)

	// HasStyle reports whether a keyed stylesheet is already present.
	HasStyle(key string) bool

	// InsertStyle attaches a keyed stylesheet to the document.
	InsertStyle(key, css string) error

	// RemoveStyle detaches a previously inserted stylesheet.
	RemoveStyle(key string) error
}

// Clipboard writes text on behalf of the host. Implementations may be
// asynchronous and should honour the context; failures are surfaced to the
// shell, which falls back to a manual-copy prompt.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
