package view

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/listview"
)

func TestNewListLinks(t *testing.T) {
	ctrl := listview.New(listview.Config{
		Limit:       20,
		SortFields:  []string{"createdAt", "priority"},
		DefaultSort: "createdAt",
		Tabs:        []string{"open", "all"},
		DefaultTab:  "open",
		Filters:     []listview.Filter{{Name: "status", Values: []string{"OPEN", "CLOSED"}}},
	})
	q, err := url.ParseQuery("tab=all&page=3&status=OPEN")
	require.NoError(t, err)
	ctrl.Initialize(q)
	ctrl.SetResult(true, "")

	l := NewList("/admin/support-tickets", ctrl, []Column{
		{Label: "Created", Field: "createdAt"},
		{Label: "Subject"},
		{Label: "Priority", Field: "priority"},
	})

	assert.Equal(t, 3, l.Page)
	assert.Equal(t, "/admin/support-tickets?page=2&status=OPEN&tab=all", l.PrevURL)
	assert.Equal(t, "/admin/support-tickets?page=4&status=OPEN&tab=all", l.NextURL)

	require.Len(t, l.Columns, 3)
	assert.True(t, l.Columns[0].Active)
	assert.Equal(t, "desc", l.Columns[0].Order)
	assert.Equal(t, "/admin/support-tickets?sortOrder=asc&status=OPEN&tab=all", l.Columns[0].URL)
	assert.Empty(t, l.Columns[1].URL)
	assert.Equal(t, "/admin/support-tickets?sortBy=priority&status=OPEN&tab=all", l.Columns[2].URL)

	assert.Equal(t, []Hidden{{Name: "tab", Value: "all"}}, l.Keep)

	require.Len(t, l.Tabs, 2)
	assert.Equal(t, "/admin/support-tickets?status=OPEN", l.Tabs[0].URL)
	assert.True(t, l.Tabs[1].Active)

	// the original controller is untouched
	assert.Equal(t, 40, ctrl.State().Offset)
}

func TestNewListKeepsSortForFilterForms(t *testing.T) {
	ctrl := listview.New(listview.Config{
		Limit:       20,
		SortFields:  []string{"createdAt", "updatedAt"},
		DefaultSort: "createdAt",
		Filters:     []listview.Filter{{Name: "q"}},
	})
	q, err := url.ParseQuery("sortBy=updatedAt&sortOrder=asc&page=2&q=refund")
	require.NoError(t, err)
	ctrl.Initialize(q)

	l := NewList("/admin/orders", ctrl, nil)
	assert.Equal(t, []Hidden{
		{Name: "sortBy", Value: "updatedAt"},
		{Name: "sortOrder", Value: "asc"},
	}, l.Keep)
}

func TestNewListFirstPageHasNoPrev(t *testing.T) {
	ctrl := listview.New(listview.Config{Limit: 10})
	l := NewList("/admin/orders", ctrl, nil)
	assert.Empty(t, l.PrevURL)
	assert.Empty(t, l.NextURL)
}

func TestNav(t *testing.T) {
	assert.Nil(t, Nav(nil, "/admin"))

	items := Nav(&Operator{UID: "u"}, "/admin/orders/ord_1")
	for _, n := range items {
		assert.NotEqual(t, "Reports", n.Label)
		assert.Equal(t, n.Path == "/admin/orders", n.Active, n.Path)
	}
	assert.Len(t, Nav(&Operator{IsOwner: true}, "/admin"), 12)
}
