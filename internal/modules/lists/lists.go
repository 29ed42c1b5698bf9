// Package lists declares every paginated dashboard screen: its list
// configuration, how its tab maps onto backend parameters and which endpoint
// feeds it. SSR pages and the JSON list API share these definitions.
package lists

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/listview"
)

// Backend is the subset of *kameroapi.API the list screens read from.
type Backend interface {
	ListRecentSignups(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.RecentSignup], error)
	ListWhitelabels(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.Whitelabel], error)
	ListOrders(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.Order], error)
	ListSellerWallets(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.SellerWallet], error)
	ListSupportTickets(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.SupportTicket], error)
	ListAuditLogs(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.AuditLogEntry], error)
	ListWebLeads(ctx context.Context, q url.Values) (kameroapi.Page[kameroapi.WebLead], error)
}

// Result is one fetched page. Items holds the typed slice of the screen's
// entity.
type Result struct {
	Items      any    `json:"items"`
	Count      int    `json:"count"`
	Total      int64  `json:"total"`
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
}

type fetchFunc func(ctx context.Context, b Backend, q url.Values) (Result, error)

// Screen describes one list view.
type Screen struct {
	Name   string
	Title  string
	Path   string
	Config listview.Config

	// OffsetParam names the backend paging parameter; "offset" when empty.
	OffsetParam string

	tab   func(tab string, q url.Values)
	fetch fetchFunc
}

// Controller returns a fresh controller seeded from the request query.
func (s Screen) Controller(q url.Values, opts ...listview.Option) *listview.Controller {
	ctrl := listview.New(s.Config, opts...)
	ctrl.Initialize(q)
	return ctrl
}

// Query renders the controller state as this screen's backend parameters.
func (s Screen) Query(ctrl *listview.Controller) url.Values {
	q := ctrl.APIQuery(s.OffsetParam)
	if s.tab != nil {
		s.tab(ctrl.State().Tab, q)
	}
	return q
}

// Load fetches the page the controller points at and records the paging
// result on it, so NextPage is bounded by what the backend reported.
func (s Screen) Load(ctx context.Context, b Backend, ctrl *listview.Controller) (Result, error) {
	res, err := s.fetch(ctx, b, s.Query(ctrl))
	if err != nil {
		return Result{}, err
	}
	if !s.Config.Cursor && !res.HasMore {
		st := ctrl.State()
		res.HasMore = int64(st.Offset+res.Count) < res.Total
	}
	ctrl.SetResult(res.HasMore, res.NextCursor)
	return res, nil
}

func page[T any](list func(Backend) func(context.Context, url.Values) (kameroapi.Page[T], error)) fetchFunc {
	return func(ctx context.Context, b Backend, q url.Values) (Result, error) {
		p, err := list(b)(ctx, q)
		if err != nil {
			return Result{}, err
		}
		items := p.Items
		if items == nil {
			items = []T{}
		}
		return Result{Items: items, Count: len(items), Total: p.Total, HasMore: p.HasMore, NextCursor: p.NextCursor}, nil
	}
}

var registry = map[string]Screen{}

func register(s Screen) {
	registry[s.Name] = s
}

// Lookup returns the screen registered under name.
func Lookup(name string) (Screen, bool) {
	s, ok := registry[name]
	return s, ok
}

// MustLookup is Lookup for the fixed names handlers are wired with.
func MustLookup(name string) Screen {
	s, ok := registry[name]
	if !ok {
		panic("lists: unknown screen " + strconv.Quote(name))
	}
	return s
}

// Names lists all registered screens in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
