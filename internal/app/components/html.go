package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// HTML writes markup and keeps the first error, so components can be written
// as straight-line code and check Err once at the end.
type HTML struct {
	w   io.Writer
	err error
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes escaped text.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// urlAttrs carry URLs. Their values pass templ's URL sanitizer, which
// only lets relative, http, https, mailto, tel and ftp URLs through.
var urlAttrs = map[string]bool{"href": true, "src": true, "action": true, "formaction": true, "hx-get": true, "hx-post": true}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) {
	if urlAttrs[strings.ToLower(name)] {
		value = string(templ.URL(value))
	}
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Open writes a start tag with attributes given as name/value pairs.
func (h *HTML) Open(tag string, attrs ...string) {
	h.Raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.Attr(attrs[i], attrs[i+1])
	}
	h.Raw(">")
}

func (h *HTML) Close(tag string) {
	h.Raw("</" + tag + ">")
}

// Elem writes a complete element with escaped text content.
func (h *HTML) Elem(tag, text string, attrs ...string) {
	h.Open(tag, attrs...)
	h.Text(text)
	h.Close(tag)
}

// Render writes a nested component; nil components are skipped.
func (h *HTML) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *HTML) Err() error {
	return h.err
}

// Func adapts straight-line markup code into a templ.Component.
func Func(fn func(ctx context.Context, h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		fn(ctx, h)
		return h.Err()
	})
}
