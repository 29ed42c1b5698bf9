// Package templates embeds the dashboard's page bodies and the helpers they
// call. The document shell and shared chrome are templ components.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/templates/components"
)

//go:embed pages/*.html
var files embed.FS

const (
	dateTime = "02 Jan 2006 15:04"
	dateOnly = "02 Jan 2006"
)

// Parse compiles every template. Pages are addressed by their define name,
// e.g. "orders/list".
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "pages/*.html")
}

// Page renders the page template called name as the body of the layout.
func Page(t *template.Template, name string, p view.Page) templ.Component {
	var body *template.Template
	if t != nil {
		body = t.Lookup(name)
	}
	if body == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("templates: no page %q", name)
		})
	}
	return components.Layout(p, templ.FromGoHTML(body, p))
}

// chrome adapts a list component for use inside a page template.
func chrome(c func(view.List) templ.Component) func(view.List) (template.HTML, error) {
	return func(l view.List) (template.HTML, error) {
		return templ.ToGoHTML(context.Background(), c(l))
	}
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":    money,
		"show":     show,
		"date":     func(v any) string { return when(v, dateTime) },
		"day":      func(v any) string { return when(v, dateOnly) },
		"fieldErr": fieldErr,
		"tone":     tone,
		"title":    title,
		"join":     strings.Join,
		"bytes":    humanBytes,
		"list":     func(xs ...string) []string { return xs },
		"tabs":     chrome(components.Tabs),
		"keep":     chrome(components.Keep),
		"sortHead": chrome(components.Head),
		"pager":    chrome(components.Pager),
		"emptyRow": chrome(components.EmptyRow),
	}
}

// unwrap opens opt.Value boxes.
func unwrap(v any) any {
	if o, ok := v.(interface{ Any() any }); ok {
		return o.Any()
	}
	return v
}

// money formats an amount that may be absent.
func money(v any, currency string) string {
	switch x := unwrap(v).(type) {
	case float64:
		return kameroapi.FormatAmount(x, currency)
	case int64:
		return kameroapi.FormatAmount(float64(x), currency)
	case int:
		return kameroapi.FormatAmount(float64(x), currency)
	default:
		return "-"
	}
}

// show renders any value for a table cell; absent values become "-".
func show(v any) string {
	switch x := unwrap(v).(type) {
	case nil:
		return "-"
	case string:
		if strings.TrimSpace(x) == "" {
			return "-"
		}
		return x
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case time.Time:
		return when(x, dateTime)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func when(v any, layout string) string {
	switch x := unwrap(v).(type) {
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Format(layout)
	case *time.Time:
		if x == nil || x.IsZero() {
			return "-"
		}
		return x.Format(layout)
	default:
		return "-"
	}
}

func fieldErr(f *view.Flash, name string) string {
	return f.Field(name)
}

// tone picks the badge colour for a status word.
func tone(status any) string {
	switch strings.ToUpper(show(status)) {
	case "PAID", "SUCCESS", "ACTIVE", "RESOLVED", "COMPLETED":
		return "success"
	case "FAILED", "CANCELLED", "SUSPENDED", "CLOSED", "ERROR":
		return "danger"
	case "PENDING", "OPEN", "IN_PROGRESS":
		return "warning"
	default:
		return "muted"
	}
}

func title(s string) string {
	s = strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func humanBytes(v any) string {
	var n float64
	switch x := unwrap(v).(type) {
	case int64:
		n = float64(x)
	case int:
		n = float64(x)
	default:
		return "-"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	for n >= 1024 && i < len(units)-1 {
		n /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f %s", n, units[i])
	}
	return fmt.Sprintf("%.1f %s", n, units[i])
}
