package listview

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketsConfig() Config {
	return Config{
		Limit:       20,
		SortFields:  []string{"createdAt", "updatedAt", "priority"},
		DefaultSort: "createdAt",
		Tabs:        []string{"open", "all"},
		DefaultTab:  "open",
		Filters: []Filter{
			{Name: "status", Values: []string{"OPEN", "IN_PROGRESS", "RESOLVED", "CLOSED"}},
			{Name: "q"},
		},
	}
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestInitializeFromSupportTicketsURL(t *testing.T) {
	var replaced []string
	c := New(ticketsConfig(), WithNavigator(NavigatorFunc(func(q string) { replaced = append(replaced, q) })))
	c.Initialize(mustQuery(t, "tab=all&page=3&status=OPEN"))

	st := c.State()
	assert.Equal(t, 40, st.Offset)
	assert.Equal(t, 20, st.Limit)
	assert.Equal(t, "OPEN", st.Filters["status"])
	assert.Equal(t, "all", st.Tab)

	c.SetResult(true, "")
	require.True(t, c.NextPage())
	assert.Equal(t, 60, c.State().Offset)
	require.Len(t, replaced, 1)
	assert.Contains(t, replaced[0], "page=4")
	assert.Contains(t, c.ToURLQuery(), "page=4")
}

func TestInitializeFallsBackOnMalformedValues(t *testing.T) {
	c := New(ticketsConfig())
	c.Initialize(mustQuery(t, "page=-2&sortBy=bogus&sortOrder=sideways&tab=nope&status=WHATEVER"))

	st := c.State()
	assert.Equal(t, 0, st.Offset)
	assert.Equal(t, "createdAt", st.SortField)
	assert.Equal(t, Desc, st.SortOrder)
	assert.Equal(t, "open", st.Tab)
	assert.Empty(t, st.Filters)
	assert.Equal(t, "", c.ToURLQuery())
}

func TestInitializeCanonicalizesEnumFilter(t *testing.T) {
	c := New(ticketsConfig())
	c.Initialize(mustQuery(t, "status=in_progress"))
	assert.Equal(t, "IN_PROGRESS", c.Filter("status"))
}

func TestSortToggle(t *testing.T) {
	c := New(ticketsConfig())

	c.SetSort("priority")
	assert.Equal(t, "priority", c.State().SortField)
	assert.Equal(t, Desc, c.State().SortOrder)

	c.SetSort("priority")
	assert.Equal(t, Asc, c.State().SortOrder)

	c.SetSort("priority")
	assert.Equal(t, Desc, c.State().SortOrder)

	c.SetSort("unknown")
	assert.Equal(t, "priority", c.State().SortField)
}

func TestSetSortResetsOffset(t *testing.T) {
	c := New(ticketsConfig())
	c.Initialize(mustQuery(t, "page=5"))
	c.SetSort("updatedAt")
	assert.Equal(t, 0, c.State().Offset)
}

func TestSetFilterResetsPaging(t *testing.T) {
	for _, page := range []string{"2", "3", "17"} {
		reloads := 0
		c := New(ticketsConfig(), WithReload(func(State) { reloads++ }))
		c.Initialize(mustQuery(t, "page="+page))
		require.NotZero(t, c.State().Offset)

		c.SetFilter("q", "refund")
		assert.Equal(t, 0, c.State().Offset, "page %s", page)
		assert.Equal(t, 1, reloads)
	}
}

func TestSetFilterClearsAndIgnoresInvalid(t *testing.T) {
	c := New(ticketsConfig())
	c.SetFilter("status", "RESOLVED")
	assert.Equal(t, "RESOLVED", c.Filter("status"))

	c.SetFilter("status", "NOT_A_STATUS")
	assert.Equal(t, "RESOLVED", c.Filter("status"))

	c.SetFilter("status", "")
	assert.Equal(t, "", c.Filter("status"))

	c.SetFilter("unknown", "x")
	assert.NotContains(t, c.State().Filters, "unknown")
}

func TestPreviousPageClampsAtZero(t *testing.T) {
	c := New(ticketsConfig())
	assert.False(t, c.PreviousPage())

	c.Initialize(mustQuery(t, "page=2"))
	require.True(t, c.PreviousPage())
	assert.Equal(t, 0, c.State().Offset)
	assert.False(t, c.PreviousPage())
}

func TestNextPageBoundedByHasMore(t *testing.T) {
	c := New(ticketsConfig())
	assert.False(t, c.NextPage())
	assert.Equal(t, 0, c.State().Offset)

	c.SetResult(true, "")
	require.True(t, c.NextPage())
	assert.Equal(t, 20, c.State().Offset)
	assert.False(t, c.NextPage(), "hasMore must be refreshed by the next fetch")
}

func TestURLRoundTrip(t *testing.T) {
	cfg := ticketsConfig()
	offsets := []int{0, 20, 200}
	sorts := []string{"createdAt", "updatedAt", "priority"}
	orders := []Order{Asc, Desc}
	tabs := []string{"open", "all"}
	filters := []map[string]string{
		{},
		{"status": "CLOSED"},
		{"status": "OPEN", "q": "wedding album & more"},
	}

	for _, off := range offsets {
		for _, s := range sorts {
			for _, o := range orders {
				for _, tab := range tabs {
					for _, f := range filters {
						st := State{Offset: off, Limit: 20, Filters: f, SortField: s, SortOrder: o, Tab: tab}
						got := Parse(cfg, Serialize(cfg, st))
						assert.Equal(t, st, got)
					}
				}
			}
		}
	}
}

func TestToURLQueryOmitsDefaults(t *testing.T) {
	c := New(ticketsConfig())
	assert.Equal(t, "", c.ToURLQuery())

	c.SetSort("createdAt")
	assert.Equal(t, "sortOrder=asc", c.ToURLQuery())
}

func TestAPIQuery(t *testing.T) {
	c := New(ticketsConfig())
	c.Initialize(mustQuery(t, "page=2&status=OPEN&sortBy=priority&sortOrder=asc"))

	q := c.APIQuery("skip")
	assert.Equal(t, "20", q.Get("skip"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Equal(t, "priority", q.Get("sortBy"))
	assert.Equal(t, "asc", q.Get("sortOrder"))
	assert.Equal(t, "OPEN", q.Get("status"))
	assert.Empty(t, q.Get("tab"))
}

func TestCursorPaging(t *testing.T) {
	cfg := Config{Limit: 50, Cursor: true, Filters: []Filter{{Name: "source"}}}
	c := New(cfg)
	c.Initialize(mustQuery(t, "page=4"))
	assert.Equal(t, 0, c.State().Offset)
	assert.False(t, c.HasPrevious())

	c.SetResult(true, "abc")
	require.True(t, c.NextPage())
	assert.Equal(t, "cursor=abc", c.ToURLQuery())
	assert.Equal(t, "abc", c.APIQuery("").Get("cursor"))

	c.SetFilter("source", "instagram")
	assert.Equal(t, "", c.State().Cursor)

	c.Initialize(mustQuery(t, "cursor=xyz"))
	require.True(t, c.PreviousPage())
	assert.Equal(t, "", c.ToURLQuery())
}

func TestCloneIsIndependent(t *testing.T) {
	calls := 0
	c := New(ticketsConfig(), WithReload(func(State) { calls++ }))
	c.SetFilter("status", "OPEN")

	cl := c.Clone()
	cl.SetFilter("status", "CLOSED")
	cl.SetSort("priority")

	assert.Equal(t, "OPEN", c.Filter("status"))
	assert.Equal(t, "createdAt", c.State().SortField)
	assert.Equal(t, 1, calls)
}
