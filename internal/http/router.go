package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/config"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/flash"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/handlers"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/handlers/admin"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/metrics"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/auditlogs"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/lists"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

const sessionCookie = "sa_session"

// Deps is everything the router wires together.
type Deps struct {
	Logger    *slog.Logger
	Config    config.Config
	DB        *gorm.DB
	Sessions  *auth.Store
	Identity  handlers.SignInner
	API       *kameroapi.Client
	Metrics   *metrics.Metrics
	Limiter   *auth.LoginLimiter
	Putter    upload.Putter
	Templates *template.Template
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HTMLRender = render.Pages{T: d.Templates}
	r.MaxMultipartMemory = 32 << 20

	flashCodec := flash.NewCodec(d.Config.CookieSecret, "sa_flash", d.Config.CookieSecure)
	sessionCfg := middleware.SessionCfg{
		Store:      d.Sessions,
		Client:     d.API,
		CookieName: sessionCookie,
		Secure:     d.Config.CookieSecure,
		Logger:     d.Logger,
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		d.Metrics.Middleware(),
		middleware.ErrorHandler(middleware.ErrorHandlerCfg{
			Logger:  d.Logger,
			Flash:   flashCodec,
			Session: sessionCfg,
			Page:    render.ErrorPage,
		}),
		middleware.Recovery(d.Logger),
	)

	r.GET("/healthz", handlers.Health(d.DB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin") })

	web := r.Group("/", flashCodec.Middleware(), middleware.SessionMiddleware(sessionCfg), middleware.SameOrigin())

	login := &handlers.LoginHandler{
		Flash:    flashCodec,
		Identity: d.Identity,
		Sessions: d.Sessions,
		Session:  sessionCfg,
		Limiter:  d.Limiter,
		Metrics:  d.Metrics,
		Logger:   d.Logger,
	}
	web.GET("/login", login.Get)
	web.POST("/login", login.Post)
	web.POST("/logout", login.Logout)

	base := &admin.Base{Flash: flashCodec, Putter: d.Putter, Logger: d.Logger}
	a := web.Group("/admin", middleware.RequireAuth(flashCodec))

	dashboard := &admin.DashboardHandler{Base: base}
	a.GET("", dashboard.Overview)

	users := &admin.UsersHandler{Base: base}
	a.GET("/users", users.Search)
	a.GET("/users/:id", users.Detail)

	events := &admin.EventsHandler{Base: base}
	a.GET("/events", events.Search)
	a.GET("/events/:id", events.Detail)
	a.POST("/events/:id", events.Update)

	subs := &admin.SubscriptionsHandler{Base: base}
	a.GET("/subscriptions", subs.Page)
	a.POST("/subscriptions/create", subs.Create)
	a.POST("/subscriptions/addon", subs.AddAddon)
	a.POST("/subscriptions/upgrade", subs.Upgrade)

	whitelabels := &admin.WhitelabelsHandler{Base: base}
	a.GET("/whitelabels/:id", whitelabels.Detail)
	a.POST("/whitelabels/:id/wallet", whitelabels.UpdateWallet)

	orders := &admin.OrdersHandler{Base: base}
	a.GET("/orders/:id", orders.Detail)

	sellerWallets := &admin.SellerWalletsHandler{Base: base}
	a.GET("/seller-wallets/:id", sellerWallets.Detail)
	a.POST("/seller-wallets/:id/settle", sellerWallets.Settle)

	tickets := &admin.TicketsHandler{Base: base}
	a.GET("/support-tickets/:id", tickets.Detail)
	a.POST("/support-tickets/:id/reply", tickets.Reply)
	a.POST("/support-tickets/:id/status", tickets.ChangeStatus)

	for _, l := range listPages(base) {
		a.GET(strings.TrimPrefix(l.Screen.Path, "/admin"), l.Page)
	}

	reports := &admin.ReportsHandler{Base: base}
	owner := a.Group("/reports", middleware.RequireOwner(flashCodec))
	owner.GET("", reports.Page)
	owner.GET("/:kind/download", reports.Download)

	api := r.Group("/api",
		cors.New(corsConfig(d.Config.CORSOrigins)),
		middleware.SessionMiddleware(sessionCfg),
		middleware.RequireAuth(flashCodec),
	)
	api.GET("/lists", admin.ListIndex)
	api.GET("/lists/:screen", admin.ListAPI)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Accept", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		// same-origin only
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func listPages(base *admin.Base) []*admin.ListHandler {
	return []*admin.ListHandler{
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.RecentSignups),
			Template: "recent-signups/list",
			Columns: []view.Column{
				{Label: "Signed up", Field: "createdAt"},
				{Label: "Name"}, {Label: "Email"}, {Label: "Phone"}, {Label: "Source"},
			},
		},
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.Whitelabels),
			Template: "whitelabels/list",
			Columns: []view.Column{
				{Label: "Name", Field: "name"}, {Label: "Domain"}, {Label: "Wallet"},
				{Label: "Active"}, {Label: "Created", Field: "createdAt"},
			},
		},
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.Orders),
			Template: "orders/list",
			Columns: []view.Column{
				{Label: "Order"}, {Label: "Customer"}, {Label: "Amount", Field: "amount"},
				{Label: "Status"}, {Label: "Gateway"}, {Label: "Created", Field: "createdAt"},
			},
		},
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.SellerWallets),
			Template: "seller-wallets/list",
			Columns: []view.Column{
				{Label: "Seller"}, {Label: "Available", Field: "balance"}, {Label: "Pending"},
				{Label: "Last settled"}, {Label: "Updated", Field: "updatedAt"},
			},
		},
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.SupportTickets),
			Template: "support-tickets/list",
			Columns: []view.Column{
				{Label: "Subject"}, {Label: "Status"}, {Label: "Priority", Field: "priority"},
				{Label: "User"}, {Label: "Created", Field: "createdAt"}, {Label: "Updated", Field: "updatedAt"},
			},
		},
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.AuditLogs),
			Template: "audit-logs/list",
			Columns: []view.Column{
				{Label: "When", Field: "createdAt"}, {Label: "Actor"}, {Label: "Operation"},
				{Label: "Entity"}, {Label: "Status"}, {Label: "Reason"}, {Label: "Changes"},
			},
			Present: func(items any) any {
				entries, _ := items.([]kameroapi.AuditLogEntry)
				return auditlogs.PresentAll(entries)
			},
		},
		{
			Base:     base,
			Screen:   lists.MustLookup(lists.WebLeads),
			Template: "web-leads/list",
			Columns: []view.Column{
				{Label: "Received", Field: "createdAt"}, {Label: "Name"}, {Label: "Email"},
				{Label: "Phone"}, {Label: "Source"}, {Label: "Message"},
			},
		},
	}
}
