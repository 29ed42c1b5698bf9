// Package listview keeps a list screen's paging, filters, sort and tab in sync
// with the URL query string, so that reloading or sharing a URL reproduces the
// same view.
package listview

import (
	"net/url"
	"strconv"
	"strings"
)

type Order string

const (
	Desc Order = "desc"
	Asc  Order = "asc"
)

// Query parameter names used in dashboard URLs.
const (
	ParamPage      = "page"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
	ParamTab       = "tab"
	ParamCursor    = "cursor"
)

const defaultLimit = 20

// Filter declares a recognized filter parameter. Values restricts it to an
// enum (matched case-insensitively); an empty Values accepts free text.
type Filter struct {
	Name   string
	Values []string
}

// Config describes one screen. It is fixed for the lifetime of the screen.
type Config struct {
	Limit       int
	SortFields  []string
	DefaultSort string
	Tabs        []string
	DefaultTab  string
	Filters     []Filter
	// Cursor switches paging from page numbers to an opaque backend cursor.
	Cursor bool
}

// State is the URL-visible state of a list screen.
type State struct {
	Offset    int
	Limit     int
	Filters   map[string]string
	SortField string
	SortOrder Order
	Tab       string
	Cursor    string
}

// Navigator receives the canonical query string after every change. It should
// replace the current history entry rather than push a new one.
type Navigator interface {
	Replace(query string)
}

type NavigatorFunc func(query string)

func (f NavigatorFunc) Replace(query string) { f(query) }

type Option func(*Controller)

// WithNavigator mirrors every change into the address bar.
func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.nav = n }
}

// WithReload registers the callback that refetches data after a change.
func WithReload(fn func(State)) Option {
	return func(c *Controller) { c.reload = fn }
}

type Controller struct {
	cfg   Config
	state State

	hasMore    bool
	nextCursor string

	nav    Navigator
	reload func(State)
}

// New returns a controller in its default state.
func New(cfg Config, opts ...Option) *Controller {
	cfg = normalize(cfg)
	c := &Controller{cfg: cfg, state: defaults(cfg)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func normalize(cfg Config) Config {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}
	if len(cfg.SortFields) > 0 && !contains(cfg.SortFields, cfg.DefaultSort) {
		cfg.DefaultSort = cfg.SortFields[0]
	}
	if len(cfg.SortFields) == 0 {
		cfg.DefaultSort = ""
	}
	if len(cfg.Tabs) > 0 && !contains(cfg.Tabs, cfg.DefaultTab) {
		cfg.DefaultTab = cfg.Tabs[0]
	}
	if len(cfg.Tabs) == 0 {
		cfg.DefaultTab = ""
	}
	return cfg
}

func defaults(cfg Config) State {
	return State{
		Limit:     cfg.Limit,
		Filters:   map[string]string{},
		SortField: cfg.DefaultSort,
		SortOrder: Desc,
		Tab:       cfg.DefaultTab,
	}
}

// Config returns the screen configuration after defaults were applied.
func (c *Controller) Config() Config { return c.cfg }

// Initialize seeds the state from a URL query. It never fails: anything
// unrecognized or malformed falls back to its default.
func (c *Controller) Initialize(q url.Values) {
	c.state = Parse(c.cfg, q)
	c.hasMore = false
	c.nextCursor = ""
}

// Parse builds a State from URL query values.
func Parse(cfg Config, q url.Values) State {
	cfg = normalize(cfg)
	st := defaults(cfg)

	if cfg.Cursor {
		st.Cursor = strings.TrimSpace(q.Get(ParamCursor))
	} else if raw := strings.TrimSpace(q.Get(ParamPage)); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			st.Offset = (page - 1) * cfg.Limit
		}
	}

	if f := strings.TrimSpace(q.Get(ParamSortBy)); f != "" && contains(cfg.SortFields, f) {
		st.SortField = f
	}
	if st.SortField != "" {
		if o, ok := parseOrder(q.Get(ParamSortOrder)); ok {
			st.SortOrder = o
		}
	}

	if t := strings.TrimSpace(q.Get(ParamTab)); t != "" && contains(cfg.Tabs, t) {
		st.Tab = t
	}

	for _, f := range cfg.Filters {
		if v, ok := f.accept(q.Get(f.Name)); ok {
			st.Filters[f.Name] = v
		}
	}
	return st
}

func parseOrder(s string) (Order, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Asc):
		return Asc, true
	case string(Desc):
		return Desc, true
	}
	return "", false
}

func (f Filter) accept(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	if len(f.Values) == 0 {
		return v, true
	}
	for _, allowed := range f.Values {
		if strings.EqualFold(allowed, v) {
			return allowed, true
		}
	}
	return "", false
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	st := c.state
	st.Filters = make(map[string]string, len(c.state.Filters))
	for k, v := range c.state.Filters {
		st.Filters[k] = v
	}
	return st
}

// Filter returns the current value of a filter, or "" when unset.
func (c *Controller) Filter(name string) string { return c.state.Filters[name] }

// SetFilter updates a filter and returns to the first page. An empty value
// clears the filter; a value outside the filter's enum is ignored.
func (c *Controller) SetFilter(name, value string) {
	f, ok := c.filter(name)
	if !ok {
		return
	}
	if strings.TrimSpace(value) == "" {
		delete(c.state.Filters, name)
	} else {
		v, ok := f.accept(value)
		if !ok {
			return
		}
		c.state.Filters[name] = v
	}
	c.rewind()
	c.changed()
}

// SetSort toggles the order when field is already the sort field, otherwise
// sorts by field descending. Unknown fields are ignored.
func (c *Controller) SetSort(field string) {
	if !contains(c.cfg.SortFields, field) {
		return
	}
	if c.state.SortField == field {
		c.state.SortOrder = toggle(c.state.SortOrder)
	} else {
		c.state.SortField = field
		c.state.SortOrder = Desc
	}
	c.rewind()
	c.changed()
}

// SetTab switches the active tab and returns to the first page.
func (c *Controller) SetTab(tab string) {
	if !contains(c.cfg.Tabs, tab) {
		return
	}
	c.state.Tab = tab
	c.rewind()
	c.changed()
}

// SetResult records paging metadata from the last fetch. hasMore bounds
// NextPage; nextCursor is only used by cursor screens.
func (c *Controller) SetResult(hasMore bool, nextCursor string) {
	c.hasMore = hasMore
	c.nextCursor = nextCursor
}

func (c *Controller) HasMore() bool { return c.hasMore }

func (c *Controller) HasPrevious() bool {
	if c.cfg.Cursor {
		return c.state.Cursor != ""
	}
	return c.state.Offset > 0
}

// NextPage advances one page. It reports false, changing nothing, when the
// last fetch said there is nothing more.
func (c *Controller) NextPage() bool {
	if !c.hasMore {
		return false
	}
	if c.cfg.Cursor {
		if c.nextCursor == "" {
			return false
		}
		c.state.Cursor = c.nextCursor
	} else {
		c.state.Offset += c.state.Limit
	}
	c.hasMore = false
	c.nextCursor = ""
	c.changed()
	return true
}

// PreviousPage steps back one page, clamped at the first. Cursor screens
// cannot walk backwards and return to the first page instead.
func (c *Controller) PreviousPage() bool {
	if !c.HasPrevious() {
		return false
	}
	if c.cfg.Cursor {
		c.state.Cursor = ""
	} else {
		c.state.Offset -= c.state.Limit
		if c.state.Offset < 0 {
			c.state.Offset = 0
		}
	}
	c.changed()
	return true
}

// Page is the 1-based page number shown in the URL.
func (c *Controller) Page() int { return c.state.Offset/c.state.Limit + 1 }

// Values returns the canonical URL values; parameters at their default are
// omitted.
func (c *Controller) Values() url.Values {
	return Serialize(c.cfg, c.state)
}

// ToURLQuery returns the canonical query string.
func (c *Controller) ToURLQuery() string { return c.Values().Encode() }

// Serialize is the inverse of Parse for valid states.
func Serialize(cfg Config, st State) url.Values {
	cfg = normalize(cfg)
	q := url.Values{}
	if cfg.Cursor {
		if st.Cursor != "" {
			q.Set(ParamCursor, st.Cursor)
		}
	} else if page := st.Offset/cfg.Limit + 1; page > 1 {
		q.Set(ParamPage, strconv.Itoa(page))
	}
	if st.SortField != "" && st.SortField != cfg.DefaultSort {
		q.Set(ParamSortBy, st.SortField)
	}
	if st.SortField != "" && st.SortOrder == Asc {
		q.Set(ParamSortOrder, string(Asc))
	}
	if st.Tab != "" && st.Tab != cfg.DefaultTab {
		q.Set(ParamTab, st.Tab)
	}
	for name, v := range st.Filters {
		if v != "" {
			q.Set(name, v)
		}
	}
	return q
}

// APIQuery renders the state as backend list parameters. offsetParam is the
// endpoint's paging parameter ("offset" or "skip"). The tab is left to the
// caller since each screen maps it differently.
func (c *Controller) APIQuery(offsetParam string) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.state.Limit))
	if c.cfg.Cursor {
		if c.state.Cursor != "" {
			q.Set(ParamCursor, c.state.Cursor)
		}
	} else {
		if offsetParam == "" {
			offsetParam = "offset"
		}
		q.Set(offsetParam, strconv.Itoa(c.state.Offset))
	}
	if c.state.SortField != "" {
		q.Set(ParamSortBy, c.state.SortField)
		q.Set(ParamSortOrder, string(c.state.SortOrder))
	}
	for name, v := range c.state.Filters {
		q.Set(name, v)
	}
	return q
}

// Clone copies the controller without its navigation hooks. Handlers use it
// to build links for sort headers, tabs and pagers.
func (c *Controller) Clone() *Controller {
	return &Controller{
		cfg:        c.cfg,
		state:      c.State(),
		hasMore:    c.hasMore,
		nextCursor: c.nextCursor,
	}
}

func (c *Controller) filter(name string) (Filter, bool) {
	for _, f := range c.cfg.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return Filter{}, false
}

func (c *Controller) rewind() {
	c.state.Offset = 0
	c.state.Cursor = ""
	c.hasMore = false
	c.nextCursor = ""
}

func (c *Controller) changed() {
	if c.nav != nil {
		c.nav.Replace(c.ToURLQuery())
	}
	if c.reload != nil {
		c.reload(c.State())
	}
}

func toggle(o Order) Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
