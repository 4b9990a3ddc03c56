// Package templates holds the templ components of the countries page.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/render"
	"github.com/a-h/templ"
)

// MenuItem is one link of the menu.
type MenuItem struct {
	Label  string
	Href   string
	Active bool
}

// MenuSection groups menu items under a heading.
type MenuSection struct {
	Title string
	Items []MenuItem
}

// TableParams is everything the country table needs.
type TableParams struct {
	Title    string
	Language core.Language // Language of the Name column
	Rows     []core.ProjectedCountry
	ShowFlag bool // Render <img> flags; the column is kept either way
}

// PageParams is the full page: menu and table.
type PageParams struct {
	Menu  []MenuSection
	Table TableParams
}

// htmlWriter writes markup and remembers the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// Page renders the complete HTML document.
func Page(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="`)
		h.text(render.LanguageTag(p.Table.Language).String())
		h.raw(`"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(p.Table.Title)
		h.raw(`</title><script src="/static/js/menu.js" defer></script></head>`)
		h.raw(`<body><header lang="en"><h1>Countries and Dependencies</h1></header>`)
		if h.err != nil {
			return h.err
		}

		if err := Menu(p.Menu).Render(ctx, w); err != nil {
			return err
		}

		h.raw(`<main id="country-table">`)
		if h.err != nil {
			return h.err
		}
		if err := CountryTable(p.Table).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// Menu renders the navigation sections. Links carry hx-get so that
// static/js/menu.js swaps only #country-table and pushes the page URL.
func Menu(sections []MenuSection) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<nav id="menu" lang="en">`)
		for _, s := range sections {
			h.raw(`<section><h3>`)
			h.text(s.Title)
			h.raw(`</h3><ul>`)
			for _, item := range s.Items {
				h.raw(`<li><a href="`)
				h.text(item.Href)
				h.raw(`" hx-get="`)
				h.text(item.Href)
				h.raw(`" hx-target="#country-table" hx-push-url="true"`)
				if item.Active {
					h.raw(` class="active" aria-current="page"`)
				}
				h.raw(`>`)
				h.text(item.Label)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></section>`)
		}
		h.raw(`</nav>`)
		return h.err
	})
}

// CountryTable renders the subtitle and the table body. It is also the
// fragment returned to HTMX requests.
func CountryTable(p TableParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h2 id="subtitle">`)
		h.text(p.Title)
		h.raw(`</h2><table><thead><tr>`)
		for _, col := range render.Columns {
			h.raw(`<th>`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody id="table-rows">`)

		lang := render.LanguageTag(p.Language).String()
		dir := render.Direction(p.Language)
		for _, c := range p.Rows {
			h.raw(`<tr>`)
			h.raw(`<td>`)
			if p.ShowFlag {
				h.raw(`<img src="/`)
				h.text(render.FlagPath(c.Code))
				h.raw(`" alt="`)
				h.text(c.Code)
				h.raw(`">`)
			}
			h.raw(`</td>`)
			cell(h, c.Code)
			h.raw(`<td lang="`)
			h.text(lang)
			h.raw(`" dir="`)
			h.raw(dir)
			h.raw(`">`)
			h.text(c.Name)
			h.raw(`</td>`)
			cell(h, c.Continent)
			cell(h, render.FormatNumber(c.AreaInKm2))
			cell(h, render.FormatNumber(c.Population))
			cell(h, c.Capital)
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table><p class="count">`)
		h.raw(strconv.Itoa(len(p.Rows)))
		h.raw(` countries</p>`)
		return h.err
	})
}

func cell(h *htmlWriter, s string) {
	h.raw(`<td>`)
	h.text(s)
	h.raw(`</td>`)
}

// ErrorAlert renders an error fragment with a support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-error" role="alert"><p>`)
		h.text(message)
		h.raw(`</p>`)
		if action != "" {
			h.raw(`<p class="action">`)
			h.text(action)
			h.raw(`</p>`)
		}
		h.raw(`<p class="code">Code: `)
		h.text(code)
		h.raw(`</p></div>`)
		return h.err
	})
}
