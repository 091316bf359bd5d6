package shell

import "sync"

// StyleRegistry tracks how many mounted instances share a keyed stylesheet
// per document, so the style is inserted at most once and removed by the
// last cleanup. Documents are compared by identity, which assumes pointer
// implementations.
type StyleRegistry struct {
	mu   sync.Mutex
	refs map[styleRef]int
}

type styleRef struct {
	doc Document
	key string
}

// NewStyleRegistry returns an empty registry.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{refs: make(map[styleRef]int)}
}

// Acquire inserts the stylesheet unless the document already carries it,
// then bumps the reference count.
func (r *StyleRegistry) Acquire(doc Document, key, css string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref := styleRef{doc: doc, key: key}
	if r.refs[ref] == 0 && !doc.HasStyle(key) {
		if err := doc.InsertStyle(key, css); err != nil {
			return err
		}
	}
	r.refs[ref]++
	return nil
}

// Release drops one reference and removes the stylesheet together with the
// last one. Releasing an unknown reference is a no-op.
func (r *StyleRegistry) Release(doc Document, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref := styleRef{doc: doc, key: key}
	count, ok := r.refs[ref]
	if !ok {
		return nil
	}
	if count > 1 {
		r.refs[ref] = count - 1
		return nil
	}
	delete(r.refs, ref)
	return doc.RemoveStyle(key)
}
