package components

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

const styles = `<style>
  body{font-family:system-ui,sans-serif;margin:0;display:flex;min-height:100vh;color:#1f2933}
  nav.side{width:220px;background:#111827;color:#e5e7eb;padding:1rem 0}
  nav.side a{display:block;padding:.45rem 1.25rem;color:inherit;text-decoration:none}
  nav.side a.active{background:#374151;font-weight:600}
  main{flex:1;padding:1.5rem 2rem}
  header.top{display:flex;justify-content:space-between;align-items:center;margin-bottom:1rem}
  table{border-collapse:collapse;width:100%}
  th,td{text-align:left;padding:.5rem;border-bottom:1px solid #e5e7eb;vertical-align:top}
  .badge{padding:.1rem .45rem;border-radius:.3rem;font-size:.8rem;background:#e5e7eb}
  .success{background:#d1fae5}.danger{background:#fee2e2}.warning{background:#fef3c7}.info{background:#dbeafe}
  .toast{padding:.75rem 1rem;border-radius:.4rem;margin-bottom:1rem}
  .toast.error{background:#fee2e2}.toast.success{background:#d1fae5}.toast.info,.toast.warning{background:#fef3c7}
  .err{color:#b91c1c;font-size:.85rem}
  .tabs a{margin-right:1rem}.tabs a.active{font-weight:700}
  .cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(240px,1fr));gap:1rem}
  .card{border:1px solid #e5e7eb;border-radius:.5rem;padding:1rem}
  form.stack label{display:block;margin:.6rem 0 .2rem}
  .pager{margin-top:1rem;display:flex;gap:1rem;align-items:center}
</style>`

// Layout wraps a screen body in the document shell: sidebar and header for
// signed-in operators, the toast, and the request id footer.
func Layout(p view.Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if p.Title != "" {
			h.text(p.Title)
			h.raw(` · `)
		}
		h.raw(`Kamero Admin</title>`)
		h.raw(styles)
		h.raw(`</head><body>`)

		if p.Operator != nil {
			h.raw(`<nav class="side"><div style="padding:0 1.25rem 1rem;font-weight:700">Kamero Admin</div>`)
			for _, n := range p.Nav {
				h.raw(`<a href="`)
				h.href(n.Path)
				h.raw(`"`)
				if n.Active {
					h.raw(` class="active"`)
				}
				h.raw(`>`)
				h.text(n.Label)
				h.raw(`</a>`)
			}
			h.raw(`</nav>`)
		}

		h.raw(`<main>`)
		if p.Operator != nil {
			h.raw(`<header class="top"><h1>`)
			h.text(p.Title)
			h.raw(`</h1><form method="post" action="/logout"><span>`)
			h.text(p.Operator.Email)
			if p.Operator.IsOwner {
				h.raw(` (owner)`)
			}
			h.raw(`</span> <button type="submit">Log out</button></form></header>`)
		}
		if h.err != nil {
			return h.err
		}

		if err := Toast(p.Flash).Render(ctx, w); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		h.raw(`<footer style="margin-top:2rem;color:#9ca3af;font-size:.75rem">request `)
		h.text(p.RequestID)
		h.raw(`</footer></main></body></html>`)
		return h.err
	})
}

// ErrorBody is the body of the error page.
func ErrorBody(status int, msg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section><h2>`)
		h.text(strconv.Itoa(status))
		h.raw(` `)
		h.text(http.StatusText(status))
		h.raw(`</h2><p>`)
		h.text(msg)
		h.raw(`</p><p><a href="/admin">Back to the dashboard</a></p></section>`)
		return h.err
	})
}
