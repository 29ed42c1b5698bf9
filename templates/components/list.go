package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

// Tabs renders the list's tab strip; lists without tabs render nothing.
func Tabs(l view.List) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(l.Tabs) == 0 {
			return nil
		}
		h := &html{w: w}
		h.raw(`<div class="tabs">`)
		for _, t := range l.Tabs {
			h.raw(`<a href="`)
			h.href(t.URL)
			h.raw(`"`)
			if t.Active {
				h.raw(` class="active"`)
			}
			h.raw(`>`)
			h.text(t.Label)
			h.raw(`</a>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// Keep emits the hidden inputs a filter form resubmits.
func Keep(l view.List) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		for _, k := range l.Keep {
			h.raw(`<input type="hidden" name="`)
			h.text(k.Name)
			h.raw(`" value="`)
			h.text(k.Value)
			h.raw(`">`)
		}
		return h.err
	})
}

// Head renders the table header. Sortable columns link to their toggled
// sort and the active one shows its direction.
func Head(l view.List) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<thead><tr>`)
		for _, col := range l.Columns {
			h.raw(`<th>`)
			if col.URL == "" {
				h.text(col.Label)
				h.raw(`</th>`)
				continue
			}
			h.raw(`<a href="`)
			h.href(col.URL)
			h.raw(`">`)
			h.text(col.Label)
			if col.Active {
				if col.Order == "asc" {
					h.raw(" ↑")
				} else {
					h.raw(" ↓")
				}
			}
			h.raw(`</a></th>`)
		}
		h.raw(`</tr></thead>`)
		return h.err
	})
}

// Pager links to the neighbouring pages. Cursor lists have no page number.
func Pager(l view.List) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="pager">`)
		if l.PrevURL != "" {
			h.raw(`<a href="`)
			h.href(l.PrevURL)
			h.raw(`">← Previous</a>`)
		}
		if !l.Cursor {
			h.raw(`<span>Page `)
			h.text(strconv.Itoa(l.Page))
			if l.Total > 0 {
				h.raw(` · `)
				h.text(strconv.FormatInt(l.Total, 10))
				h.raw(` total`)
			}
			h.raw(`</span>`)
		}
		if l.NextURL != "" {
			h.raw(`<a href="`)
			h.href(l.NextURL)
			h.raw(`">Next →</a>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// EmptyRow spans the whole table when a page has no rows.
func EmptyRow(l view.List) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<tr><td colspan="`)
		h.text(strconv.Itoa(len(l.Columns)))
		h.raw(`">Nothing matches these filters.</td></tr>`)
		return h.err
	})
}
