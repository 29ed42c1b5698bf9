package view

// Operator is the signed-in staff member shown in the header.
type Operator struct {
	UID     string
	Email   string
	IsOwner bool
}

type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Page is the data every template receives; Data carries the screen's own
// view model.
type Page struct {
	Title     string
	Flash     *Flash
	Operator  *Operator
	Nav       []NavItem
	RequestID string
	Data      any
}

var nav = []struct {
	label, path string
	owner       bool
}{
	{"Overview", "/admin", false},
	{"Users", "/admin/users", false},
	{"Recent signups", "/admin/recent-signups", false},
	{"Events", "/admin/events", false},
	{"Subscriptions", "/admin/subscriptions", false},
	{"Whitelabels", "/admin/whitelabels", false},
	{"Orders", "/admin/orders", false},
	{"Seller wallets", "/admin/seller-wallets", false},
	{"Support tickets", "/admin/support-tickets", false},
	{"Audit logs", "/admin/audit-logs", false},
	{"Web leads", "/admin/web-leads", false},
	{"Reports", "/admin/reports", true},
}

// Nav builds the sidebar for op, marking the entry that owns path.
func Nav(op *Operator, path string) []NavItem {
	if op == nil {
		return nil
	}
	out := make([]NavItem, 0, len(nav))
	for _, n := range nav {
		if n.owner && !op.IsOwner {
			continue
		}
		active := path == n.path || (n.path != "/admin" && len(path) > len(n.path) && path[:len(n.path)+1] == n.path+"/")
		out = append(out, NavItem{Label: n.label, Path: n.path, Active: active})
	}
	return out
}
