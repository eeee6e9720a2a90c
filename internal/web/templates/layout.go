package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `
body{margin:0;font-family:system-ui,sans-serif;background:#141414;color:#eee}
.wrap{display:flex;flex-direction:column;gap:1rem;padding:1rem 10rem}
@media (max-width:1000px){.wrap{padding:.5rem;gap:.5rem}}
.panel{padding:1rem;background:color-mix(in srgb,rgba(197,0,0,.55),black 60%);border-radius:.5rem;border:1px solid rgba(197,0,0,.25);box-shadow:.35rem .35rem .5rem rgba(0,0,0,.55)}
a{color:#ffb37a}
nav.crumbs ol{list-style:none;display:flex;gap:.5rem;margin:0;padding:0}
nav.crumbs li+li:before{content:"/";padding-right:.5rem;color:#999}
.results{overflow-x:auto}
table{border-collapse:collapse;width:100%}
th{white-space:nowrap;padding:.25rem .5rem;font-size:.8rem;border-bottom:1px solid rgba(255,255,255,.32);border-right:1px solid rgba(255,255,255,.32)}
th a{color:inherit;text-decoration:none}
td{text-align:right;white-space:nowrap;width:1rem;padding:.25rem .5rem;font-family:monospace;font-weight:bold;border-bottom:1px solid rgba(255,255,255,.12);border-right:1px solid rgba(255,255,255,.12)}
th:last-child,td:last-child{border-right:none}
th.name,td.name{text-align:left}
td.name{width:100%}
tr{background:rgba(43,43,43,.66)}
tr:nth-child(even){background:rgba(93,93,93,.46)}
tbody tr:hover{background:rgba(175,75,0,.65);color:#fff}
.downloads{display:flex;gap:1rem}
.code{color:#999;font-size:.85rem}
`

// Layout wraps the children of ctx in the page shell.
func Layout(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", p.Lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(p.Title)
		h.raw("</title><style>" + styles + "</style></head><body><div class=\"wrap\">")
		breadcrumbs(h, p.Crumbs)
		h.raw(`<main class="panel">`)
		if h.err != nil {
			return h.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main></div></body></html>")
		return h.err
	})
}

func breadcrumbs(h *htmlWriter, crumbs []Crumb) {
	if len(crumbs) == 0 {
		return
	}
	h.raw(`<nav class="crumbs"><ol>`)
	for i, c := range crumbs {
		h.raw("<li>")
		if c.Href != "" && i < len(crumbs)-1 {
			h.raw("<a")
			h.href(c.Href)
			h.raw(">")
			h.text(c.Label)
			h.raw("</a>")
		} else {
			h.raw(`<span aria-current="page">`)
			h.text(c.Label)
			h.raw("</span>")
		}
		h.raw("</li>")
	}
	h.raw("</ol></nav>")
}

// withLayout renders body inside Layout(p).
func withLayout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(p).Render(templ.WithChildren(ctx, body), w)
	})
}
