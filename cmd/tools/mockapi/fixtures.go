package main

import (
	"fmt"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

// data is the mock backend's whole state.
type data struct {
	users         []kameroapi.User
	signups       []kameroapi.RecentSignup
	events        []kameroapi.Event
	plans         []kameroapi.Plan
	addons        []kameroapi.Addon
	subscriptions []kameroapi.Subscription
	whitelabels   []kameroapi.Whitelabel
	orders        []kameroapi.Order
	wallets       []kameroapi.SellerWallet
	sellerOrders  map[string][]kameroapi.SellerOrder
	settlements   map[string][]kameroapi.Settlement
	tickets       []kameroapi.SupportTicket
	audit         []kameroapi.AuditLogEntry
	leads         []kameroapi.WebLead

	// settled remembers idempotency keys of settlements already made.
	settled map[string]kameroapi.Settlement
}

func seed(now time.Time) *data {
	d := &data{
		sellerOrders: map[string][]kameroapi.SellerOrder{},
		settlements:  map[string][]kameroapi.Settlement{},
		settled:      map[string]kameroapi.Settlement{},
	}
	day := 24 * time.Hour

	d.plans = []kameroapi.Plan{
		{ID: "plan_basic", Name: "Basic", Price: 999, Currency: "INR", Interval: "month"},
		{ID: "plan_pro", Name: "Pro", Price: 2499, Currency: "INR", Interval: "month"},
		{ID: "plan_studio", Name: "Studio", Price: 24999, Currency: "INR", Interval: "year"},
	}
	d.addons = []kameroapi.Addon{
		{ID: "addon_storage", Name: "Extra storage 100 GB", Price: 499, Currency: "INR"},
		{ID: "addon_events", Name: "5 extra events", Price: 799, Currency: "INR"},
	}

	d.whitelabels = []kameroapi.Whitelabel{
		{ID: "wl_lens", Name: "Lens & Co", Domain: opt.Some("photos.lensco.in"), OwnerEmail: opt.Some("owner@lensco.in"),
			Wallet: opt.Some(kameroapi.Money{Amount: 12000, Currency: "INR"}), EventCount: opt.Some(42), UserCount: opt.Some(9),
			Active: opt.Some(true), CreatedAt: now.Add(-200 * day)},
		{ID: "wl_shutter", Name: "Shutterbox", Domain: opt.Some("gallery.shutterbox.co"),
			Wallet: opt.Some(kameroapi.Money{Amount: 0, Currency: "INR"}), Active: opt.Some(false), CreatedAt: now.Add(-90 * day)},
	}

	names := []string{"Asha Rao", "Vikram Shah", "Meera Iyer", "Kabir Das", "Priya Nair", "Rohan Gupta", "Sara Khan", "Dev Patel"}
	sources := []string{"web", "android", "ios", "whitelabel"}
	for i, n := range names {
		id := fmt.Sprintf("usr_%03d", i+1)
		email := fmt.Sprintf("user%d@example.in", i+1)
		created := now.Add(-time.Duration(i*3+1) * day)
		u := kameroapi.User{
			ID: id, Name: opt.Some(n), Email: opt.Some(email), Phone: opt.Some(fmt.Sprintf("+9198765%05d", i)),
			Role: "photographer", EventCount: opt.Some(i % 4), CreatedAt: created,
			LastLoginAt: opt.Some(now.Add(-time.Duration(i) * time.Hour)),
		}
		if i%3 == 0 {
			u.WhitelabelID = opt.Some("wl_lens")
		}
		d.users = append(d.users, u)
		d.signups = append(d.signups, kameroapi.RecentSignup{
			ID: id, Name: u.Name, Email: u.Email, Phone: u.Phone, Source: opt.Some(sources[i%len(sources)]),
			WhitelabelID: u.WhitelabelID, CreatedAt: created,
		})
	}

	d.subscriptions = []kameroapi.Subscription{
		{ID: "sub_001", UserID: "usr_001", PlanID: "plan_pro", PlanName: "Pro", Status: "active",
			StartsAt: now.Add(-20 * day), EndsAt: opt.Some(now.Add(10 * day))},
	}

	for i := 0; i < 6; i++ {
		d.events = append(d.events, kameroapi.Event{
			ID: fmt.Sprintf("evt_%03d", i+1), Name: fmt.Sprintf("Wedding %d", i+1), OwnerID: d.users[i].ID,
			OwnerEmail: d.users[i].Email, Status: "active", PhotoCount: opt.Some(120 * (i + 1)), MaxPhotos: opt.Some(5000),
			StorageBytes: opt.Some(int64(i+1) * 750 << 20), StartDate: opt.Some(now.Add(-time.Duration(i) * day)),
			ExpiresAt: opt.Some(now.Add(60 * day)), Published: opt.Some(i%2 == 0), CreatedAt: now.Add(-time.Duration(i+2) * day),
		})
	}

	statuses := []string{"PAID", "PAID", "PENDING", "FAILED", "REFUNDED"}
	for i := 0; i < 60; i++ {
		u := d.users[i%len(d.users)]
		d.orders = append(d.orders, kameroapi.Order{
			ID: fmt.Sprintf("ord_%04d", i+1), UserID: u.ID, UserEmail: u.Email, EventID: opt.Some(d.events[i%len(d.events)].ID),
			Amount: float64(499 + i*50), Currency: "INR", Status: statuses[i%len(statuses)], Gateway: opt.Some("razorpay"),
			GatewayRef: opt.Some(fmt.Sprintf("pay_%06d", i)),
			Items:      []kameroapi.OrderItem{{Description: "Photo download pack", Quantity: 1 + i%3, Amount: float64(499 + i*50)}},
			CreatedAt:  now.Add(-time.Duration(i) * 7 * time.Hour),
		})
	}

	for i, u := range d.users[:4] {
		id := fmt.Sprintf("sw_%03d", i+1)
		w := kameroapi.SellerWallet{
			ID: id, SellerID: u.ID, SellerName: u.Name, SellerEmail: u.Email, Balance: float64(2500 * (i + 1)),
			Currency: "INR", UpdatedAt: now.Add(-time.Duration(i) * day),
		}
		if i%2 == 0 {
			w.PendingBalance = opt.Some(float64(800 * (i + 1)))
		}
		d.wallets = append(d.wallets, w)
		for j := 0; j < 3; j++ {
			d.sellerOrders[id] = append(d.sellerOrders[id], kameroapi.SellerOrder{
				ID: fmt.Sprintf("%s_so_%d", id, j), OrderID: d.orders[i*3+j].ID, Amount: d.orders[i*3+j].Amount,
				Commission: d.orders[i*3+j].Amount * 0.1, Currency: "INR", Status: "PAID", CreatedAt: d.orders[i*3+j].CreatedAt,
			})
		}
	}

	ticketStatuses := []kameroapi.TicketStatus{kameroapi.TicketOpen, kameroapi.TicketInProgress, kameroapi.TicketResolved, kameroapi.TicketClosed}
	priorities := []string{"low", "medium", "high", "urgent"}
	for i := 0; i < 24; i++ {
		u := d.users[i%len(d.users)]
		created := now.Add(-time.Duration(i) * 5 * time.Hour)
		d.tickets = append(d.tickets, kameroapi.SupportTicket{
			ID: fmt.Sprintf("tkt_%03d", i+1), Subject: fmt.Sprintf("Cannot download album %d", i+1),
			Status: ticketStatuses[i%len(ticketStatuses)], Priority: opt.Some(priorities[i%len(priorities)]),
			Category: opt.Some("downloads"), UserID: u.ID, UserEmail: u.Email,
			Messages: []kameroapi.TicketMessage{{
				ID: fmt.Sprintf("msg_%03d_1", i+1), Author: u.Name.Or(u.ID), AuthorRole: "user",
				Body: "The download button spins forever.", CreatedAt: created,
			}},
			CreatedAt: created, UpdatedAt: opt.Some(created),
		})
	}

	for i := 0; i < 45; i++ {
		d.leads = append(d.leads, kameroapi.WebLead{
			ID: fmt.Sprintf("lead_%03d", i+1), Name: opt.Some(fmt.Sprintf("Lead %d", i+1)),
			Email: opt.Some(fmt.Sprintf("lead%d@studio.in", i+1)), Source: opt.Some(sources[i%2]),
			Message: opt.Some("Interested in the studio plan."), CreatedAt: now.Add(-time.Duration(i) * 3 * time.Hour),
		})
	}
	return d
}
