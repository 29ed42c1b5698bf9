package components

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

func rendered(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestToastEscapesMessage(t *testing.T) {
	out := rendered(t, Toast(&view.Flash{Kind: view.FlashError, Message: `<b>nope</b>`}))
	assert.Equal(t, `<div class="toast error" role="status">&lt;b&gt;nope&lt;/b&gt;</div>`, out)
	assert.Empty(t, rendered(t, Toast(nil)))
}

func TestLayoutShowsOperatorChrome(t *testing.T) {
	op := &view.Operator{Email: "ops@kamero.in", IsOwner: true}
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})
	out := rendered(t, Layout(view.Page{
		Title:     "Orders",
		Operator:  op,
		Nav:       view.Nav(op, "/admin/orders"),
		Flash:     &view.Flash{Kind: view.FlashSuccess, Message: "Saved."},
		RequestID: "rid-1",
	}, body))

	assert.Contains(t, out, "<title>Orders · Kamero Admin</title>")
	assert.Contains(t, out, `<a href="/admin/orders" class="active">Orders</a>`)
	assert.Contains(t, out, "ops@kamero.in (owner)")
	assert.Contains(t, out, `role="status">Saved.</div><p>body</p>`)
	assert.Contains(t, out, "request rid-1")
}

func TestLayoutSignedOutHasNoSidebar(t *testing.T) {
	out := rendered(t, Layout(view.Page{}, nil))
	assert.Contains(t, out, "<title>Kamero Admin</title>")
	assert.NotContains(t, out, `class="side"`)
	assert.NotContains(t, out, "Log out")
}

func TestListChrome(t *testing.T) {
	l := view.List{
		Columns: []view.Column{
			{Label: "Subject"},
			{Label: "Created", URL: "/admin/support-tickets?sortOrder=asc", Active: true, Order: "desc"},
		},
		Tabs:    []view.Tab{{Label: "open", URL: "/admin/support-tickets"}, {Label: "all", URL: "/admin/support-tickets?tab=all", Active: true}},
		Keep:    []view.Hidden{{Name: "tab", Value: "all"}},
		Page:    2,
		Total:   45,
		PrevURL: "/admin/support-tickets?tab=all",
	}

	assert.Equal(t,
		`<div class="tabs"><a href="/admin/support-tickets">open</a><a href="/admin/support-tickets?tab=all" class="active">all</a></div>`,
		rendered(t, Tabs(l)))
	assert.Equal(t, `<input type="hidden" name="tab" value="all">`, rendered(t, Keep(l)))
	assert.Equal(t,
		`<thead><tr><th>Subject</th><th><a href="/admin/support-tickets?sortOrder=asc">Created ↓</a></th></tr></thead>`,
		rendered(t, Head(l)))
	assert.Equal(t, `<tr><td colspan="2">Nothing matches these filters.</td></tr>`, rendered(t, EmptyRow(l)))

	pager := rendered(t, Pager(l))
	assert.Contains(t, pager, `<a href="/admin/support-tickets?tab=all">← Previous</a>`)
	assert.Contains(t, pager, "Page 2 · 45 total")
	assert.NotContains(t, pager, "Next")

	l.Cursor = true
	assert.NotContains(t, rendered(t, Pager(l)), "Page ")
	assert.Empty(t, rendered(t, Tabs(view.List{})))
}

func TestUnsafeLinksAreReplaced(t *testing.T) {
	out := rendered(t, Tabs(view.List{Tabs: []view.Tab{{Label: "x", URL: "javascript:alert(1)"}}}))
	assert.NotContains(t, out, "javascript:")
}
