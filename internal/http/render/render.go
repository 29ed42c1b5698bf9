// Package render wraps gin's HTML rendering with the dashboard layout data.
package render

import (
	"context"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	ginrender "github.com/gin-gonic/gin/render"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/flash"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/templates"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/templates/components"
)

// Pages is the engine's HTML renderer. c.HTML(status, name, page) renders
// the named page template inside the templ layout.
type Pages struct {
	T *template.Template
}

func (p Pages) Instance(name string, data any) ginrender.Render {
	page, _ := data.(view.Page)
	return component{ctx: context.Background(), comp: templates.Page(p.T, name, page)}
}

type component struct {
	ctx  context.Context
	comp templ.Component
}

func (r component) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return r.comp.Render(r.ctx, w)
}

func (component) WriteContentType(w http.ResponseWriter) {
	if h := w.Header(); len(h["Content-Type"]) == 0 {
		h["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}

// Component renders a templ component as the whole response.
func Component(c *gin.Context, status int, comp templ.Component) {
	c.Render(status, component{ctx: c.Request.Context(), comp: comp})
}

func pageFor(c *gin.Context, title string, data any) view.Page {
	var op *view.Operator
	if sess, ok := middleware.CurrentSession(c); ok {
		op = &view.Operator{UID: sess.UID, Email: sess.Email, IsOwner: sess.IsOwner}
	}
	return view.Page{
		Title:     title,
		Flash:     flash.From(c),
		Operator:  op,
		Nav:       view.Nav(op, c.Request.URL.Path),
		RequestID: middleware.GetRequestID(c),
		Data:      data,
	}
}

// Page renders the named template inside the layout.
func Page(c *gin.Context, status int, name, title string, data any) {
	c.HTML(status, name, pageFor(c, title, data))
}

func ErrorPage(c *gin.Context, status int, msg string) {
	p := pageFor(c, http.StatusText(status), nil)
	Component(c, status, components.Layout(p, components.ErrorBody(status, msg)))
}

// RedirectWithFlash queues a toast and redirects with 303 so a POST is not
// replayed.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, f view.Flash) {
	codec.Set(c, f)
	c.Redirect(http.StatusSeeOther, location)
}
