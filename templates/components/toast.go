package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

// Toast shows the flash carried over from the previous request. A nil flash
// renders nothing.
func Toast(f *view.Flash) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if f == nil || f.Message == "" {
			return nil
		}
		h := &html{w: w}
		h.raw(`<div class="toast `)
		h.text(string(f.Kind))
		h.raw(`" role="status">`)
		h.text(f.Message)
		h.raw(`</div>`)
		return h.err
	})
}
