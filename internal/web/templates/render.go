// Package templates renders the HTML pages as templ components.
//
// Components take plain view data. Translation and formatting happen in the
// handlers.
package templates

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with a leading space and the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href writes an href attribute, dropping unsafe URL schemes.
func (h *htmlWriter) href(url string) {
	h.attr("href", string(templ.URL(url)))
}

// Crumb is one breadcrumb or link. An empty Href renders plain text.
type Crumb struct {
	Label string
	Href  string
}

// Page holds what every page shares.
type Page struct {
	Lang   string
	Title  string
	Crumbs []Crumb
}
