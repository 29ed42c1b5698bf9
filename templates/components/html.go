// Package components holds the dashboard chrome as templ components: the
// page layout, the toast and the pieces shared by list screens.
package components

import (
	"io"

	"github.com/a-h/templ"
)

// html writes markup and remembers the first write error so components can
// emit a run of fragments and check once.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) { h.raw(templ.EscapeString(s)) }

// href writes an attribute-safe URL; javascript: and similar schemes are
// replaced.
func (h *html) href(u string) { h.text(string(templ.URL(u))) }
