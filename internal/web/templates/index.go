package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RaceLink is one entry of the race list.
type RaceLink struct {
	Date  string // YYYYMMDD
	Label string // long date
	Href  string
}

// IndexData is the race list page.
type IndexData struct {
	Page
	Heading string
	Count   string // "12 baterias"
	Races   []RaceLink
	Latest  *Crumb

	// Empty is shown instead of the list when Races is empty.
	Empty string

	// Notice explains why the list could not be loaded.
	Notice *Notice
}

// Notice is an inline error message.
type Notice struct {
	Message string
	Action  string
	Code    string
	CodeTag string // "Código"
}

// IndexPage renders the race list, newest first as given.
func IndexPage(d IndexData) templ.Component {
	return withLayout(d.Page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(d.Heading)
		h.raw("</h1>")

		if d.Notice != nil {
			notice(h, *d.Notice)
		}

		if len(d.Races) == 0 {
			if d.Notice == nil {
				h.raw(`<p class="empty">`)
				h.text(d.Empty)
				h.raw("</p>")
			}
			return h.err
		}

		if d.Latest != nil {
			h.raw(`<p class="latest"><a`)
			h.href(d.Latest.Href)
			h.raw(">")
			h.text(d.Latest.Label)
			h.raw("</a></p>")
		}
		if d.Count != "" {
			h.raw(`<p class="count">`)
			h.text(d.Count)
			h.raw("</p>")
		}

		h.raw(`<ul class="races">`)
		for _, r := range d.Races {
			h.raw("<li><a")
			h.href(r.Href)
			h.attr("data-date", r.Date)
			h.raw(">")
			h.text(r.Label)
			h.raw("</a></li>")
		}
		h.raw("</ul>")
		return h.err
	}))
}

func notice(h *htmlWriter, n Notice) {
	h.raw(`<div class="notice" role="alert"><p><strong>`)
	h.text(n.Message)
	h.raw("</strong></p>")
	if n.Action != "" {
		h.raw("<p>")
		h.text(n.Action)
		h.raw("</p>")
	}
	if n.Code != "" {
		h.raw(`<p class="code">`)
		h.text(n.CodeTag + ": " + n.Code)
		h.raw("</p>")
	}
	h.raw("</div>")
}
