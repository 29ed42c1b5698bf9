package view

import (
	"sort"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/listview"
)

// Column is a table header; sortable columns link to their toggled sort.
type Column struct {
	Label  string
	Field  string
	Active bool
	Order  string
	URL    string
}

// Hidden is a query parameter a filter form resubmits unchanged.
type Hidden struct {
	Name  string
	Value string
}

type Tab struct {
	Label  string
	URL    string
	Active bool
}

// List is the chrome around a list table: headers, tabs, filters and pager.
type List struct {
	Path    string
	Columns []Column
	Tabs    []Tab
	Tab     string
	Filters map[string]string
	// Keep holds the tab and sort a filter form must carry over. Paging is
	// dropped since a new filter starts at the first page.
	Keep    []Hidden
	Page    int
	PrevURL string
	NextURL string
	Cursor  bool
	Count   int
	Total   int64
	Items   any
}

// NewList derives every link from ctrl after it has loaded its page. Columns
// with an empty Field are not sortable.
func NewList(path string, ctrl *listview.Controller, columns []Column) List {
	st := ctrl.State()
	l := List{
		Path:    path,
		Filters: st.Filters,
		Tab:     st.Tab,
		Page:    ctrl.Page(),
		Cursor:  ctrl.Config().Cursor,
		Keep:    keep(ctrl),
	}

	for _, col := range columns {
		if col.Field != "" {
			next := ctrl.Clone()
			next.SetSort(col.Field)
			col.URL = link(path, next)
			col.Active = st.SortField == col.Field
			if col.Active {
				col.Order = string(st.SortOrder)
			}
		}
		l.Columns = append(l.Columns, col)
	}

	for _, tab := range ctrl.Config().Tabs {
		next := ctrl.Clone()
		next.SetTab(tab)
		l.Tabs = append(l.Tabs, Tab{Label: tab, URL: link(path, next), Active: tab == st.Tab})
	}

	if prev := ctrl.Clone(); prev.PreviousPage() {
		l.PrevURL = link(path, prev)
	}
	if next := ctrl.Clone(); next.NextPage() {
		l.NextURL = link(path, next)
	}
	return l
}

func link(path string, c *listview.Controller) string {
	if q := c.ToURLQuery(); q != "" {
		return path + "?" + q
	}
	return path
}

func keep(c *listview.Controller) []Hidden {
	q := c.Values()
	q.Del(listview.ParamPage)
	q.Del(listview.ParamCursor)
	for _, f := range c.Config().Filters {
		q.Del(f.Name)
	}
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Hidden, 0, len(names))
	for _, name := range names {
		out = append(out, Hidden{Name: name, Value: q.Get(name)})
	}
	return out
}
