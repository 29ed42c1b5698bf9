package lists

import (
	"context"
	"net/url"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/listview"
)

// Screen names; also the :screen segment of /api/lists.
const (
	RecentSignups  = "recent-signups"
	Whitelabels    = "whitelabels"
	Orders         = "orders"
	SellerWallets  = "seller-wallets"
	SupportTickets = "support-tickets"
	AuditLogs      = "audit-logs"
	WebLeads       = "web-leads"
)

// OrderStatuses are the order states the backend filters on.
var OrderStatuses = []string{"PENDING", "PAID", "FAILED", "REFUNDED", "CANCELLED"}

// AuditEntityTypes are the entity kinds audit entries are recorded for.
var AuditEntityTypes = []string{"user", "event", "subscription", "whitelabel", "wallet", "ticket"}

func ticketStatusValues() []string {
	out := make([]string, len(kameroapi.TicketStatuses))
	for i, s := range kameroapi.TicketStatuses {
		out[i] = string(s)
	}
	return out
}

func init() {
	register(Screen{
		Name:  RecentSignups,
		Title: "Recent signups",
		Path:  "/admin/recent-signups",
		Config: listview.Config{
			Limit:       20,
			SortFields:  []string{"createdAt"},
			DefaultSort: "createdAt",
			Tabs:        []string{"24h", "7d", "30d"},
			DefaultTab:  "7d",
			Filters:     []listview.Filter{{Name: "source"}, {Name: "whitelabelId"}},
		},
		tab: func(tab string, q url.Values) { q.Set("period", tab) },
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.RecentSignup], error) {
			return b.ListRecentSignups
		}),
	})

	register(Screen{
		Name:  Whitelabels,
		Title: "Whitelabels",
		Path:  "/admin/whitelabels",
		Config: listview.Config{
			Limit:       20,
			SortFields:  []string{"createdAt", "name"},
			DefaultSort: "createdAt",
			Filters:     []listview.Filter{{Name: "q"}, {Name: "active", Values: []string{"true", "false"}}},
		},
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.Whitelabel], error) {
			return b.ListWhitelabels
		}),
	})

	register(Screen{
		Name:  Orders,
		Title: "Orders",
		Path:  "/admin/orders",
		Config: listview.Config{
			Limit:       25,
			SortFields:  []string{"createdAt", "amount"},
			DefaultSort: "createdAt",
			Filters: []listview.Filter{
				{Name: "q"},
				{Name: "status", Values: OrderStatuses},
				{Name: "gateway"},
			},
		},
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.Order], error) {
			return b.ListOrders
		}),
	})

	register(Screen{
		Name:  SellerWallets,
		Title: "Seller wallets",
		Path:  "/admin/seller-wallets",
		Config: listview.Config{
			Limit:       20,
			SortFields:  []string{"updatedAt", "balance"},
			DefaultSort: "updatedAt",
			Tabs:        []string{"all", "pending"},
			DefaultTab:  "all",
			Filters:     []listview.Filter{{Name: "q"}},
		},
		tab: func(tab string, q url.Values) {
			if tab == "pending" {
				q.Set("hasPending", "true")
			}
		},
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.SellerWallet], error) {
			return b.ListSellerWallets
		}),
	})

	register(Screen{
		Name:  SupportTickets,
		Title: "Support tickets",
		Path:  "/admin/support-tickets",
		Config: listview.Config{
			Limit:       20,
			SortFields:  []string{"createdAt", "updatedAt", "priority"},
			DefaultSort: "createdAt",
			Tabs:        []string{"open", "all"},
			DefaultTab:  "open",
			Filters: []listview.Filter{
				{Name: "status", Values: ticketStatusValues()},
				{Name: "priority", Values: []string{"low", "medium", "high", "urgent"}},
				{Name: "q"},
			},
		},
		// "open" narrows to unfinished tickets unless a status is picked.
		tab: func(tab string, q url.Values) {
			if tab == "open" && q.Get("status") == "" {
				q.Set("statusIn", string(kameroapi.TicketOpen)+","+string(kameroapi.TicketInProgress))
			}
		},
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.SupportTicket], error) {
			return b.ListSupportTickets
		}),
	})

	register(Screen{
		Name:        AuditLogs,
		Title:       "Audit logs",
		Path:        "/admin/audit-logs",
		OffsetParam: "skip",
		Config: listview.Config{
			Limit:       50,
			SortFields:  []string{"createdAt"},
			DefaultSort: "createdAt",
			Filters: []listview.Filter{
				{Name: "entityType", Values: AuditEntityTypes},
				{Name: "operationType"},
				{Name: "actorId"},
				{Name: "entityId"},
			},
		},
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.AuditLogEntry], error) {
			return b.ListAuditLogs
		}),
	})

	register(Screen{
		Name:  WebLeads,
		Title: "Web leads",
		Path:  "/admin/web-leads",
		Config: listview.Config{
			Limit:       30,
			SortFields:  []string{"createdAt"},
			DefaultSort: "createdAt",
			Filters:     []listview.Filter{{Name: "source"}, {Name: "q"}},
			Cursor:      true,
		},
		fetch: page(func(b Backend) func(context.Context, url.Values) (kameroapi.Page[kameroapi.WebLead], error) {
			return b.ListWebLeads
		}),
	})
}
