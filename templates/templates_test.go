package templates

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/listview"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/lists"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

func render(t *testing.T, name string, p view.Page) string {
	t.Helper()
	tpl, err := Parse()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Page(tpl, name, p).Render(context.Background(), &buf))
	return buf.String()
}

func TestEveryPageIsDefined(t *testing.T) {
	tpl, err := Parse()
	require.NoError(t, err)
	for _, name := range []string{
		"login", "overview", "reports", "subscriptions",
		"users/search", "users/detail", "events/search", "events/detail",
		"whitelabels/list", "whitelabels/detail", "orders/list", "orders/detail",
		"seller-wallets/list", "seller-wallets/detail",
		"support-tickets/list", "support-tickets/detail",
		"audit-logs/list", "web-leads/list", "recent-signups/list",
	} {
		assert.NotNil(t, tpl.Lookup(name), name)
	}
}

func TestOrdersListRendersRowsAndPager(t *testing.T) {
	op := &view.Operator{Email: "ops@kamero.in"}
	out := render(t, "orders/list", view.Page{
		Title:    "Orders",
		Operator: op,
		Nav:      view.Nav(op, "/admin/orders"),
		Flash:    &view.Flash{Kind: view.FlashSuccess, Message: "Saved."},
		Data: view.List{
			Path:    "/admin/orders",
			Columns: []view.Column{{Label: "Order"}, {Label: "Amount", URL: "/admin/orders?sort=amount", Active: true, Order: "asc"}},
			Filters: map[string]string{"status": "PAID"},
			Page:    2,
			PrevURL: "/admin/orders",
			NextURL: "/admin/orders?page=3",
			Items: []kameroapi.Order{{
				ID: "ord_1", UserID: "u1", UserEmail: opt.Some("a@b.in"),
				Amount: 1499.5, Currency: "INR", Status: "PAID",
				CreatedAt: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
			}},
		},
	})

	assert.Contains(t, out, `href="/admin/orders/ord_1"`)
	assert.Contains(t, out, "₹1,499.50")
	assert.Contains(t, out, "a@b.in")
	assert.Contains(t, out, `<option value="PAID" selected>`)
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, `href="/admin/orders?page=3"`)
	assert.Contains(t, out, "Saved.")
	assert.Contains(t, out, `class="active"`)
}

func TestFilterFormKeepsTabAndSort(t *testing.T) {
	screen := lists.MustLookup(lists.SupportTickets)
	ctrl := listview.New(screen.Config)
	q, err := url.ParseQuery("tab=all&sortBy=updatedAt&sortOrder=asc&page=3")
	require.NoError(t, err)
	ctrl.Initialize(q)

	l := view.NewList(screen.Path, ctrl, nil)
	l.Items = []kameroapi.SupportTicket{}
	out := render(t, "support-tickets/list", view.Page{Data: l})

	assert.Contains(t, out, `<input type="hidden" name="sortBy" value="updatedAt">`)
	assert.Contains(t, out, `<input type="hidden" name="sortOrder" value="asc">`)
	assert.Contains(t, out, `<input type="hidden" name="tab" value="all">`)
	assert.NotContains(t, out, `name="page"`)

	// submitting the form with a new status keeps the sort and starts over
	submitted := url.Values{"status": {"OPEN"}}
	for _, h := range l.Keep {
		submitted.Set(h.Name, h.Value)
	}
	next := listview.New(screen.Config)
	next.Initialize(submitted)
	st := next.State()
	assert.Equal(t, "updatedAt", st.SortField)
	assert.Equal(t, listview.Asc, st.SortOrder)
	assert.Equal(t, "all", st.Tab)
	assert.Equal(t, "OPEN", st.Filters["status"])
	assert.Equal(t, 0, st.Offset)
}

func TestEmptyListShowsPlaceholder(t *testing.T) {
	out := render(t, "web-leads/list", view.Page{Data: view.List{
		Path:    "/admin/web-leads",
		Columns: []view.Column{{Label: "Received"}, {Label: "Name"}},
		Cursor:  true,
		Items:   []kameroapi.WebLead{},
	}})
	assert.Contains(t, out, `colspan="2"`)
	assert.NotContains(t, out, "Page ")
}

func TestFieldErrorsRenderNextToInputs(t *testing.T) {
	out := render(t, "whitelabels/detail", view.Page{
		Flash: &view.Flash{Kind: view.FlashError, Message: "Fix the form.", Fields: map[string]string{"amount": "Enter an amount."}},
		Data: struct {
			Whitelabel kameroapi.Whitelabel
			Operations []kameroapi.WalletOperation
		}{
			Whitelabel: kameroapi.Whitelabel{ID: "wl1", Name: "Acme", Wallet: opt.Some(kameroapi.Money{Amount: 10, Currency: "INR"})},
			Operations: []kameroapi.WalletOperation{kameroapi.WalletCredit, kameroapi.WalletDebit},
		},
	})
	assert.Contains(t, out, "Enter an amount.")
	assert.Contains(t, out, `action="/admin/whitelabels/wl1/wallet"`)
	assert.Contains(t, out, `enctype="multipart/form-data"`)
	assert.Contains(t, out, ">Credit<")
}

func TestUnknownPageFails(t *testing.T) {
	tpl, err := Parse()
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, Page(tpl, "nope", view.Page{}).Render(context.Background(), &buf))
}

func TestShow(t *testing.T) {
	assert.Equal(t, "-", show(opt.None[string]()))
	assert.Equal(t, "-", show("  "))
	assert.Equal(t, "x", show(opt.Some("x")))
	assert.Equal(t, "Yes", show(opt.Some(true)))
	assert.Equal(t, "42", show(42))
	assert.Equal(t, "01 Oct 2026 09:30", show(time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "-", money(opt.None[float64](), "INR"))
	assert.Equal(t, "₹250.00", money(opt.Some(250.0), "INR"))
	assert.Equal(t, "-", when(opt.None[time.Time](), dateOnly))
	assert.Equal(t, "In progress", title("IN_PROGRESS"))
	assert.Equal(t, "success", tone("paid"))
	assert.Equal(t, "warning", tone(kameroapi.TicketInProgress))
	assert.Equal(t, "1.5 KB", humanBytes(int64(1536)))
	assert.Equal(t, "-", humanBytes(opt.None[int64]()))
	assert.True(t, strings.HasPrefix(humanBytes(512), "512"))
}
