package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorData is the full-page error.
type ErrorData struct {
	Page
	Heading string
	Notice  Notice
	Back    Crumb
}

// ErrorPage renders a user-facing error with its support code.
func ErrorPage(d ErrorData) templ.Component {
	return withLayout(d.Page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(d.Heading)
		h.raw("</h1>")
		notice(h, d.Notice)
		if d.Back.Href != "" {
			h.raw(`<p><a`)
			h.href(d.Back.Href)
			h.raw(">")
			h.text(d.Back.Label)
			h.raw("</a></p>")
		}
		return h.err
	}))
}
