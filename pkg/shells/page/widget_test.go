package page_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/formjson/pkg/shell"
	"github.com/goliatone/formjson/pkg/shells/page"
)

type fakeContainer struct {
	mu      sync.Mutex
	content string
	cleared int
}

func (c *fakeContainer) SetContent(markup string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = markup
	return nil
}

func (c *fakeContainer) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = ""
	c.cleared++
	return nil
}

func (c *fakeContainer) markup() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

type fakeDocument struct {
	containers map[string]*fakeContainer
	styles     map[string]string
	inserts    int
}

func newFakeDocument(ids ...string) *fakeDocument {
	doc := &fakeDocument{
		containers: make(map[string]*fakeContainer),
		styles:     make(map[string]string),
	}
	for _, id := range ids {
		doc.containers[id] = &fakeContainer{}
	}
	return doc
}

func (d *fakeDocument) Container(id string) (shell.Container, error) {
	container, ok := d.containers[id]
	if !ok {
		return nil, fmt.Errorf("no container %q", id)
	}
	return container, nil
}

func (d *fakeDocument) HasStyle(key string) bool {
	_, ok := d.styles[key]
	return ok
}

func (d *fakeDocument) InsertStyle(key, css string) error {
	d.inserts++
	d.styles[key] = css
	return nil
}

func (d *fakeDocument) RemoveStyle(key string) error {
	delete(d.styles, key)
	return nil
}

type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) WriteText(_ context.Context, text string) error {
	c.text = text
	return nil
}

type failingClipboard struct{}

func (failingClipboard) WriteText(context.Context, string) error {
	return errors.New("denied")
}

const sampleMarkup = `<form action="/api/x" method="post"><input name="age" value="30"></form>`

func TestMountRendersScaffoldAndInjectsStyleOnce(t *testing.T) {
	doc := newFakeDocument("a", "b")

	_, cleanupA, err := page.Mount(doc, "a")
	if err != nil {
		t.Fatalf("mount a: %v", err)
	}
	defer cleanupA()

	_, cleanupB, err := page.Mount(doc, "b")
	if err != nil {
		t.Fatalf("mount b: %v", err)
	}
	defer cleanupB()

	if doc.inserts != 1 {
		t.Fatalf("want one stylesheet insert per document, got %d", doc.inserts)
	}

	markup := doc.containers["a"].markup()
	if !strings.Contains(markup, `class="fj-widget"`) {
		t.Fatalf("scaffold missing widget root:\n%s", markup)
	}
	if !strings.Contains(markup, "Copy JSON") {
		t.Fatalf("scaffold missing copy button label:\n%s", markup)
	}
}

func TestCleanupRemovesStyleWithLastInstance(t *testing.T) {
	doc := newFakeDocument("a", "b")

	_, cleanupA, err := page.Mount(doc, "a")
	if err != nil {
		t.Fatalf("mount a: %v", err)
	}
	_, cleanupB, err := page.Mount(doc, "b")
	if err != nil {
		t.Fatalf("mount b: %v", err)
	}

	cleanupA()
	if !doc.HasStyle("formjson-widget") {
		t.Fatal("style removed while a widget is still mounted")
	}
	if doc.containers["a"].cleared != 1 {
		t.Fatalf("container a not cleared: %d", doc.containers["a"].cleared)
	}

	cleanupB()
	if doc.HasStyle("formjson-widget") {
		t.Fatal("style still present after last cleanup")
	}
}

func TestMountUnknownContainer(t *testing.T) {
	doc := newFakeDocument("a")
	if _, _, err := page.Mount(doc, "missing"); err == nil {
		t.Fatal("want error for unknown container")
	}
}

func TestConvertRendersHighlightedOutput(t *testing.T) {
	doc := newFakeDocument("a")
	widget, cleanup, err := page.Mount(doc, "a")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	if err := widget.Convert(context.Background(), sampleMarkup); err != nil {
		t.Fatalf("convert: %v", err)
	}

	markup := doc.containers["a"].markup()
	if !strings.Contains(markup, `<span class="fj-key">&quot;age&quot;</span>`) &&
		!strings.Contains(markup, `<span class="fj-key">"age"</span>`) {
		t.Fatalf("highlighted output missing key span:\n%s", markup)
	}
	if !strings.Contains(markup, `fj-widget__output`) {
		t.Fatalf("output block missing:\n%s", markup)
	}

	want := `{
  "age": 30,
  "__form__action": "/api/x",
  "__form__method": "POST"
}`
	if widget.JSON() != want {
		t.Fatalf("JSON mismatch:\nwant: %s\ngot:  %s", want, widget.JSON())
	}
}

func TestConvertRendersErrorBox(t *testing.T) {
	doc := newFakeDocument("a")
	widget, cleanup, err := page.Mount(doc, "a")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	if err := widget.Convert(context.Background(), "   "); err == nil {
		t.Fatal("want conversion error for blank input")
	}

	markup := doc.containers["a"].markup()
	if !strings.Contains(markup, "fj-widget__error") {
		t.Fatalf("error box missing:\n%s", markup)
	}
	if !strings.Contains(markup, "input markup is empty") {
		t.Fatalf("error message missing:\n%s", markup)
	}
	if widget.JSON() != "" {
		t.Fatalf("stale JSON after failed conversion: %q", widget.JSON())
	}
}

func TestCopyWritesClipboardAndFlipsLabel(t *testing.T) {
	doc := newFakeDocument("a")
	clipboard := &recordingClipboard{}
	widget, cleanup, err := page.Mount(doc, "a", page.WithClipboard(clipboard))
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	if err := widget.Convert(context.Background(), sampleMarkup); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if err := widget.Copy(context.Background()); err != nil {
		t.Fatalf("copy: %v", err)
	}

	if clipboard.text != widget.JSON() {
		t.Fatalf("clipboard content mismatch:\nwant: %s\ngot:  %s", widget.JSON(), clipboard.text)
	}
	markup := doc.containers["a"].markup()
	if !strings.Contains(markup, "Copied!") {
		t.Fatalf("copy label did not flip:\n%s", markup)
	}
}

func TestCopyWithoutClipboardShowsPrompt(t *testing.T) {
	doc := newFakeDocument("a")
	widget, cleanup, err := page.Mount(doc, "a")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	if err := widget.Convert(context.Background(), sampleMarkup); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if err := widget.Copy(context.Background()); err != nil {
		t.Fatalf("copy should degrade, not fail: %v", err)
	}

	markup := doc.containers["a"].markup()
	if !strings.Contains(markup, "Clipboard unavailable") {
		t.Fatalf("manual-copy prompt missing:\n%s", markup)
	}
}

func TestCopyFailureShowsPrompt(t *testing.T) {
	doc := newFakeDocument("a")
	widget, cleanup, err := page.Mount(doc, "a", page.WithClipboard(failingClipboard{}))
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	if err := widget.Convert(context.Background(), sampleMarkup); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if err := widget.Copy(context.Background()); err != nil {
		t.Fatalf("copy should degrade, not fail: %v", err)
	}

	markup := doc.containers["a"].markup()
	if !strings.Contains(markup, "Clipboard unavailable") {
		t.Fatalf("manual-copy prompt missing:\n%s", markup)
	}
	if strings.Contains(markup, "Copied!") {
		t.Fatalf("label flipped despite failed write:\n%s", markup)
	}
}

func TestCopyBeforeConversionIsNoop(t *testing.T) {
	doc := newFakeDocument("a")
	clipboard := &recordingClipboard{}
	widget, cleanup, err := page.Mount(doc, "a", page.WithClipboard(clipboard))
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	if err := widget.Copy(context.Background()); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if clipboard.text != "" {
		t.Fatalf("clipboard written without a document: %q", clipboard.text)
	}
}

type fakeThemeSelector struct {
	tokens map[string]string
}

func (s fakeThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return &theme.Selection{
		Theme:   name,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:   name,
			Tokens: s.tokens,
		},
	}, nil
}

func TestMountAppendsThemeVariables(t *testing.T) {
	doc := newFakeDocument("a")
	selector := fakeThemeSelector{tokens: map[string]string{"fj-key-color": "#ff0000"}}

	_, cleanup, err := page.Mount(doc, "a", page.WithThemeSelector(selector, "dracula", "dark"))
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer cleanup()

	css := doc.styles["formjson-widget"]
	if !strings.Contains(css, ":root {") {
		t.Fatalf("theme variables block missing:\n%s", css)
	}
	if !strings.Contains(css, "--fj-key-color: #ff0000;") {
		t.Fatalf("token not mapped to a CSS variable:\n%s", css)
	}
}
