package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/storage"
)

const tokenTTL = time.Hour

type server struct {
	mu       sync.Mutex
	d        *data
	refresh  map[string]operator
	store    storage.Presigner
	local    *storage.Local
	password string
	secret   []byte
	logger   *slog.Logger
	now      func() time.Time
}

type operator struct {
	UID   string
	Email string
	Owner bool
}

func newServer(store storage.FactoryResult, password string, secret []byte, logger *slog.Logger) *server {
	now := func() time.Time { return time.Now().UTC() }
	return &server{
		d:        seed(now()),
		refresh:  map[string]operator{},
		store:    store.Presigner,
		local:    store.Local,
		password: password,
		secret:   secret,
		logger:   logger,
		now:      now,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.POST("/identity/v1/*action", s.identity)
	if s.local != nil {
		r.PUT("/_uploads/*key", s.acceptUpload)
		r.Static("/uploads", s.local.BaseDir)
	}

	a := r.Group("/admin", s.requireToken())
	a.GET("/users/search", s.findUser)
	a.GET("/users/recent-signups", s.listSignups)
	a.GET("/users/:id", s.getUser)

	a.GET("/events/search", s.findEvent)
	a.GET("/events/:id", s.getEvent)
	a.PATCH("/events/:id", s.updateEvent)

	a.GET("/subscriptions/plans", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"items": s.d.plans}) })
	a.GET("/subscriptions/addons", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"items": s.d.addons}) })
	a.GET("/subscriptions", s.listSubscriptions)
	a.POST("/subscriptions", s.createSubscription)
	a.POST("/subscriptions/:id/addons", s.addAddon)
	a.POST("/subscriptions/:id/upgrade", s.upgrade)

	a.GET("/whitelabels", s.listWhitelabels)
	a.GET("/whitelabels/:id", s.getWhitelabel)
	a.POST("/whitelabels/:id/wallet", s.updateWallet)

	a.GET("/orders", s.listOrders)
	a.GET("/orders/:id", s.getOrder)

	a.GET("/seller-wallets", s.listSellerWallets)
	a.GET("/seller-wallets/:id", s.getSellerWallet)
	a.GET("/seller-wallets/:id/orders", s.listSellerOrders)
	a.GET("/seller-wallets/:id/settlements", s.listSettlements)
	a.POST("/seller-wallets/:id/settle", s.settle)

	a.GET("/support-tickets", s.listTickets)
	a.GET("/support-tickets/:id", s.getTicket)
	a.POST("/support-tickets/:id/reply", s.replyTicket)
	a.PATCH("/support-tickets/:id/status", s.ticketStatus)

	a.GET("/audit-logs", s.listAudit)
	a.GET("/web-leads", s.listLeads)

	reports := a.Group("/reports", s.requireOwner())
	reports.GET("/:kind", s.analytics)
	reports.GET("/:kind/download", s.downloadReport)

	a.POST("/uploads/presign", s.presign)
	return r
}

func (s *server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("mock_request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": msg})
}

func ok(msg string, extra gin.H) gin.H {
	out := gin.H{"success": true, "message": msg}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// identity

func (s *server) identity(c *gin.Context) {
	switch c.Param("action") {
	case "/accounts:signInWithPassword":
		s.signIn(c)
	case "/token":
		s.refreshToken(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "NOT_FOUND"}})
	}
}

func identityError(c *gin.Context, code string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": code}})
}

func (s *server) signIn(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
		identityError(c, "INVALID_EMAIL")
		return
	}
	if strings.HasPrefix(in.Email, "disabled") {
		identityError(c, "USER_DISABLED")
		return
	}
	if in.Password != s.password {
		identityError(c, "INVALID_LOGIN_CREDENTIALS")
		return
	}

	local, _, _ := strings.Cut(in.Email, "@")
	op := operator{UID: "op_" + local, Email: in.Email, Owner: strings.HasPrefix(in.Email, "owner")}
	idToken, err := s.issue(op)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}
	rt := uuid.NewString()
	s.mu.Lock()
	s.refresh[rt] = op
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"idToken":      idToken,
		"refreshToken": rt,
		"expiresIn":    strconv.Itoa(int(tokenTTL.Seconds())),
		"localId":      op.UID,
		"email":        op.Email,
	})
}

func (s *server) refreshToken(c *gin.Context) {
	rt := c.PostForm("refresh_token")
	s.mu.Lock()
	op, found := s.refresh[rt]
	s.mu.Unlock()
	if !found {
		identityError(c, "INVALID_REFRESH_TOKEN")
		return
	}
	idToken, err := s.issue(op)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id_token":      idToken,
		"refresh_token": rt,
		"expires_in":    strconv.Itoa(int(tokenTTL.Seconds())),
		"user_id":       op.UID,
	})
}

func (s *server) issue(op operator) (string, error) {
	now := s.now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     op.UID,
		"email":   op.Email,
		"isOwner": op.Owner,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}).SignedString(s.secret)
}

func (s *server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(kameroapi.AuthHeader)
		if raw == "" {
			fail(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Missing identity token")
			return
		}
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.now),
		)
		if err != nil {
			fail(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Identity token is invalid or expired")
			return
		}
		sub, _ := claims.GetSubject()
		email, _ := claims["email"].(string)
		owner, _ := claims["isOwner"].(bool)
		c.Set("operator", operator{UID: sub, Email: email, Owner: owner})
		c.Next()
	}
}

func (s *server) requireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !current(c).Owner {
			fail(c, http.StatusForbidden, "FORBIDDEN", "Reports are restricted to owners")
			return
		}
		c.Next()
	}
}

func current(c *gin.Context) operator {
	op, _ := c.MustGet("operator").(operator)
	return op
}

// audit records a mutation the way the real backend does.
func (s *server) audit(c *gin.Context, operation, entityType, entityID, reason string, changes map[string]any) {
	op := current(c)
	e := kameroapi.AuditLogEntry{
		ID: uuid.NewString(), ActorID: op.UID, ActorEmail: opt.Some(op.Email), OperationType: operation,
		EntityType: entityType, EntityID: entityID, Status: opt.Some("success"),
		IPAddress: opt.Some(c.ClientIP()), CreatedAt: s.now(),
	}
	if reason != "" {
		e.Reason = opt.Some(reason)
	}
	if len(changes) > 0 {
		e.Changes = opt.Some(changes)
	}
	s.d.audit = append([]kameroapi.AuditLogEntry{e}, s.d.audit...)
}

// paging

type pageQuery struct {
	limit, offset int
	cursor        bool
}

func readPage(c *gin.Context, offsetParam string, def int) pageQuery {
	p := pageQuery{limit: atoi(c.Query("limit"), def)}
	if p.limit <= 0 || p.limit > 100 {
		p.limit = def
	}
	if cur, has := c.GetQuery("cursor"); has {
		p.cursor = true
		p.offset = atoi(cur, 0)
	} else {
		p.offset = atoi(c.Query(offsetParam), 0)
	}
	if p.offset < 0 {
		p.offset = 0
	}
	return p
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func respondPage[T any](c *gin.Context, all []T, p pageQuery) {
	start := min(p.offset, len(all))
	end := min(start+p.limit, len(all))
	out := gin.H{
		"items":   all[start:end],
		"total":   len(all),
		"hasMore": end < len(all),
	}
	if end < len(all) {
		out["nextCursor"] = strconv.Itoa(end)
	}
	c.JSON(http.StatusOK, out)
}

func filter[T any](all []T, keep func(T) bool) []T {
	out := make([]T, 0, len(all))
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(haystack string, q string) bool {
	return q == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(q))
}

func find[T any](all []T, match func(T) bool) (int, bool) {
	i := slices.IndexFunc(all, match)
	return i, i >= 0
}

// users

func (s *server) findUser(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.users, func(u kameroapi.User) bool {
		return u.ID == q || strings.EqualFold(u.Email.Or(""), q) || u.Phone.Or("") == q
	})
	if q == "" || !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "No user matches "+strconv.Quote(q))
		return
	}
	c.JSON(http.StatusOK, s.d.users[i])
}

func (s *server) getUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.users, func(u kameroapi.User) bool { return u.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	c.JSON(http.StatusOK, s.d.users[i])
}

var periods = map[string]time.Duration{"24h": 24 * time.Hour, "7d": 7 * 24 * time.Hour, "30d": 30 * 24 * time.Hour}

func (s *server) listSignups(c *gin.Context) {
	window, has := periods[c.Query("period")]
	if !has {
		window = periods["7d"]
	}
	since := s.now().Add(-window)
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.signups, func(r kameroapi.RecentSignup) bool {
		return r.CreatedAt.After(since) &&
			(c.Query("source") == "" || r.Source.Or("") == c.Query("source")) &&
			(c.Query("whitelabelId") == "" || r.WhitelabelID.Or("") == c.Query("whitelabelId"))
	})
	respondPage(c, rows, readPage(c, "offset", 20))
}

// events

func (s *server) findEvent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.TrimSpace(c.Query("q"))
	i, found := find(s.d.events, func(e kameroapi.Event) bool { return e.ID == q })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "No event matches "+strconv.Quote(q))
		return
	}
	c.JSON(http.StatusOK, s.d.events[i])
}

func (s *server) getEvent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.events, func(e kameroapi.Event) bool { return e.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}
	c.JSON(http.StatusOK, s.d.events[i])
}

func (s *server) updateEvent(c *gin.Context) {
	var in kameroapi.EventUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.events, func(e kameroapi.Event) bool { return e.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}
	ev := &s.d.events[i]
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = map[string]any{"from": ev.Name, "to": *in.Name}
		ev.Name = *in.Name
	}
	if in.Status != nil {
		changes["status"] = map[string]any{"from": ev.Status, "to": *in.Status}
		ev.Status = *in.Status
	}
	if in.MaxPhotos != nil {
		if *in.MaxPhotos < ev.PhotoCount.Or(0) {
			fail(c, http.StatusUnprocessableEntity, "LIMIT_BELOW_USAGE", "Photo limit is below the photos already uploaded")
			return
		}
		changes["maxPhotos"] = map[string]any{"from": ev.MaxPhotos.Any(), "to": *in.MaxPhotos}
		ev.MaxPhotos = opt.Some(*in.MaxPhotos)
	}
	if in.ExpiresAt != nil {
		ev.ExpiresAt = opt.Some(*in.ExpiresAt)
		changes["expiresAt"] = in.ExpiresAt
	}
	if in.Published != nil {
		ev.Published = opt.Some(*in.Published)
		changes["isPublished"] = *in.Published
	}
	s.audit(c, "UPDATE_EVENT", "event", ev.ID, in.Reason, changes)
	c.JSON(http.StatusOK, ok("Event updated", gin.H{"event": ev}))
}

// subscriptions

func (s *server) listSubscriptions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := c.Query("userId")
	c.JSON(http.StatusOK, gin.H{"items": filter(s.d.subscriptions, func(sub kameroapi.Subscription) bool { return sub.UserID == uid })})
}

func (s *server) plan(id string) (kameroapi.Plan, bool) {
	i, found := find(s.d.plans, func(p kameroapi.Plan) bool { return p.ID == id })
	if !found {
		return kameroapi.Plan{}, false
	}
	return s.d.plans[i], true
}

func (s *server) createSubscription(c *gin.Context) {
	var in kameroapi.SubscriptionCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid body")
		return
	}
	if in.ProofURL == "" {
		fail(c, http.StatusBadRequest, "PROOF_REQUIRED", "Payment proof is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.plan(in.PlanID)
	if !found {
		fail(c, http.StatusBadRequest, "UNKNOWN_PLAN", "Unknown plan")
		return
	}
	if _, found := find(s.d.users, func(u kameroapi.User) bool { return u.ID == in.UserID }); !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	now := s.now()
	sub := kameroapi.Subscription{
		ID: "sub_" + uuid.NewString()[:8], UserID: in.UserID, PlanID: p.ID, PlanName: p.Name, Status: "active",
		StartsAt: now, EndsAt: opt.Some(now.AddDate(0, 1, 0)), ProofURL: opt.Some(in.ProofURL),
		CreatedBy: opt.Some(current(c).Email),
	}
	if p.Interval == "year" {
		sub.EndsAt = opt.Some(now.AddDate(1, 0, 0))
	}
	s.d.subscriptions = append(s.d.subscriptions, sub)
	s.audit(c, "CREATE_SUBSCRIPTION", "subscription", sub.ID, in.Reason, map[string]any{"planId": p.ID, "amountPaid": in.AmountPaid})
	c.JSON(http.StatusCreated, ok("Subscription created", gin.H{"subscription": sub}))
}

func (s *server) subscription(c *gin.Context) (*kameroapi.Subscription, bool) {
	i, found := find(s.d.subscriptions, func(sub kameroapi.Subscription) bool { return sub.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
		return nil, false
	}
	return &s.d.subscriptions[i], true
}

func (s *server) addAddon(c *gin.Context) {
	var in kameroapi.AddonPurchase
	if err := c.ShouldBindJSON(&in); err != nil || in.Quantity <= 0 {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid add-on purchase")
		return
	}
	if in.ProofURL == "" {
		fail(c, http.StatusBadRequest, "PROOF_REQUIRED", "Payment proof is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, found := s.subscription(c)
	if !found {
		return
	}
	i, found := find(s.d.addons, func(a kameroapi.Addon) bool { return a.ID == in.AddonID })
	if !found {
		fail(c, http.StatusBadRequest, "UNKNOWN_ADDON", "Unknown add-on")
		return
	}
	sub.Addons = append(sub.Addons, kameroapi.SubscribedAddon{AddonID: in.AddonID, Name: s.d.addons[i].Name, Quantity: in.Quantity})
	s.audit(c, "ADD_SUBSCRIPTION_ADDON", "subscription", sub.ID, in.Reason, map[string]any{"addonId": in.AddonID, "quantity": in.Quantity})
	c.JSON(http.StatusOK, ok("Add-on added", gin.H{"subscription": sub}))
}

func (s *server) upgrade(c *gin.Context) {
	var in kameroapi.SubscriptionUpgrade
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid body")
		return
	}
	if in.ProofURL == "" {
		fail(c, http.StatusBadRequest, "PROOF_REQUIRED", "Payment proof is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, found := s.subscription(c)
	if !found {
		return
	}
	p, found := s.plan(in.PlanID)
	if !found {
		fail(c, http.StatusBadRequest, "UNKNOWN_PLAN", "Unknown plan")
		return
	}
	if p.ID == sub.PlanID {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Subscription is already on " + p.Name})
		return
	}
	from := sub.PlanID
	sub.PlanID, sub.PlanName = p.ID, p.Name
	s.audit(c, "UPGRADE_SUBSCRIPTION", "subscription", sub.ID, in.Reason, map[string]any{"planId": map[string]any{"from": from, "to": p.ID}})
	c.JSON(http.StatusOK, ok("Plan upgraded to "+p.Name, gin.H{"subscription": sub}))
}

// whitelabels

func (s *server) listWhitelabels(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.whitelabels, func(w kameroapi.Whitelabel) bool {
		if a := c.Query("active"); a != "" && strconv.FormatBool(w.Active.Or(false)) != a {
			return false
		}
		return contains(w.Name+" "+w.Domain.Or(""), c.Query("q"))
	})
	respondPage(c, rows, readPage(c, "offset", 20))
}

func (s *server) getWhitelabel(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.whitelabels, func(w kameroapi.Whitelabel) bool { return w.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Whitelabel not found")
		return
	}
	c.JSON(http.StatusOK, s.d.whitelabels[i])
}

func (s *server) updateWallet(c *gin.Context) {
	var in kameroapi.WalletBalanceUpdate
	if err := c.ShouldBindJSON(&in); err != nil || in.Amount <= 0 {
		fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive")
		return
	}
	if in.ProofURL == "" {
		fail(c, http.StatusBadRequest, "PROOF_REQUIRED", "Payment proof is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.whitelabels, func(w kameroapi.Whitelabel) bool { return w.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Whitelabel not found")
		return
	}
	wl := &s.d.whitelabels[i]
	wallet := wl.Wallet.Or(kameroapi.Money{Currency: "INR"})
	before := wallet.Amount
	switch in.Operation {
	case kameroapi.WalletCredit:
		wallet.Amount += in.Amount
	case kameroapi.WalletDebit:
		if in.Amount > wallet.Amount {
			fail(c, http.StatusConflict, "INSUFFICIENT_BALANCE", "Insufficient wallet balance")
			return
		}
		wallet.Amount -= in.Amount
	default:
		fail(c, http.StatusBadRequest, "INVALID_OPERATION", "Unknown wallet operation")
		return
	}
	wl.Wallet = opt.Some(wallet)
	s.audit(c, "UPDATE_WALLET_BALANCE", "wallet", wl.ID, in.Reason,
		map[string]any{"balance": map[string]any{"from": before, "to": wallet.Amount}, "proofUrl": in.ProofURL})
	c.JSON(http.StatusOK, ok("Wallet updated", gin.H{"wallet": wallet}))
}

// orders

func (s *server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.orders, func(o kameroapi.Order) bool {
		return (c.Query("status") == "" || o.Status == c.Query("status")) &&
			(c.Query("gateway") == "" || o.Gateway.Or("") == c.Query("gateway")) &&
			contains(o.ID+" "+o.UserEmail.Or(""), c.Query("q"))
	})
	if c.Query("sortBy") == "amount" {
		slices.SortStableFunc(rows, func(a, b kameroapi.Order) int {
			if c.Query("sortOrder") == "asc" {
				return cmpFloat(a.Amount, b.Amount)
			}
			return cmpFloat(b.Amount, a.Amount)
		})
	}
	respondPage(c, rows, readPage(c, "offset", 25))
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (s *server) getOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, found := find(s.d.orders, func(o kameroapi.Order) bool { return o.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	c.JSON(http.StatusOK, s.d.orders[i])
}

// seller wallets

func (s *server) listSellerWallets(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.wallets, func(w kameroapi.SellerWallet) bool {
		if c.Query("hasPending") == "true" && w.PendingBalance.Or(0) <= 0 {
			return false
		}
		return contains(w.SellerName.Or("")+" "+w.SellerEmail.Or(""), c.Query("q"))
	})
	respondPage(c, rows, readPage(c, "offset", 20))
}

func (s *server) sellerWallet(c *gin.Context) (*kameroapi.SellerWallet, bool) {
	i, found := find(s.d.wallets, func(w kameroapi.SellerWallet) bool { return w.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Seller wallet not found")
		return nil, false
	}
	return &s.d.wallets[i], true
}

func (s *server) getSellerWallet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, found := s.sellerWallet(c); found {
		c.JSON(http.StatusOK, w)
	}
}

func (s *server) listSellerOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sellerWallet(c); found {
		respondPage(c, s.d.sellerOrders[c.Param("id")], readPage(c, "offset", 20))
	}
}

func (s *server) listSettlements(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sellerWallet(c); found {
		respondPage(c, s.d.settlements[c.Param("id")], readPage(c, "offset", 20))
	}
}

func (s *server) settle(c *gin.Context) {
	var in kameroapi.SettlementRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.Amount <= 0 {
		fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive")
		return
	}
	if in.ProofURL == "" || in.IdempotencyKey == "" {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "Proof and idempotency key are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w, found := s.sellerWallet(c)
	if !found {
		return
	}
	if prev, done := s.d.settled[in.IdempotencyKey]; done {
		c.JSON(http.StatusOK, ok("Settlement already recorded", gin.H{"settlement": prev}))
		return
	}
	if in.Amount > w.Balance {
		fail(c, http.StatusConflict, "INSUFFICIENT_BALANCE", "Amount exceeds the available balance")
		return
	}
	st := kameroapi.Settlement{
		ID: "stl_" + uuid.NewString()[:8], Amount: in.Amount, Currency: w.Currency, ProofURL: opt.Some(in.ProofURL),
		SettledBy: opt.Some(current(c).Email), CreatedAt: s.now(),
	}
	if in.PaymentRef != "" {
		st.PaymentRef = opt.Some(in.PaymentRef)
	}
	if in.Notes != "" {
		st.Notes = opt.Some(in.Notes)
	}
	w.Balance -= in.Amount
	w.LastSettledAt = opt.Some(st.CreatedAt)
	w.UpdatedAt = st.CreatedAt
	s.d.settlements[w.ID] = append([]kameroapi.Settlement{st}, s.d.settlements[w.ID]...)
	s.d.settled[in.IdempotencyKey] = st
	s.audit(c, "SETTLE_SELLER_WALLET", "wallet", w.ID, in.Notes, map[string]any{"amount": in.Amount})
	c.JSON(http.StatusOK, ok("Settlement recorded", gin.H{"settlement": st}))
}

// support tickets

var priorityRank = map[string]int{"urgent": 0, "high": 1, "medium": 2, "low": 3}

func (s *server) listTickets(c *gin.Context) {
	statuses := map[string]bool{}
	if st := c.Query("status"); st != "" {
		statuses[st] = true
	}
	for _, st := range strings.Split(c.Query("statusIn"), ",") {
		if st != "" {
			statuses[st] = true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.tickets, func(t kameroapi.SupportTicket) bool {
		return (len(statuses) == 0 || statuses[string(t.Status)]) &&
			(c.Query("priority") == "" || t.Priority.Or("") == c.Query("priority")) &&
			contains(t.Subject+" "+t.UserEmail.Or(""), c.Query("q"))
	})
	if c.Query("sortBy") == "priority" {
		slices.SortStableFunc(rows, func(a, b kameroapi.SupportTicket) int {
			return priorityRank[a.Priority.Or("low")] - priorityRank[b.Priority.Or("low")]
		})
	}
	respondPage(c, rows, readPage(c, "offset", 20))
}

func (s *server) ticket(c *gin.Context) (*kameroapi.SupportTicket, bool) {
	i, found := find(s.d.tickets, func(t kameroapi.SupportTicket) bool { return t.ID == c.Param("id") })
	if !found {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
		return nil, false
	}
	return &s.d.tickets[i], true
}

func (s *server) getTicket(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, found := s.ticket(c); found {
		c.JSON(http.StatusOK, t)
	}
}

func (s *server) replyTicket(c *gin.Context) {
	var in kameroapi.TicketReply
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Message) == "" {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "Message is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, found := s.ticket(c)
	if !found {
		return
	}
	now := s.now()
	t.Messages = append(t.Messages, kameroapi.TicketMessage{
		ID: "msg_" + uuid.NewString()[:8], Author: current(c).Email, AuthorRole: "admin",
		Body: in.Message, Attachments: in.Attachments, CreatedAt: now,
	})
	if t.Status == kameroapi.TicketOpen {
		t.Status = kameroapi.TicketInProgress
	}
	t.UpdatedAt = opt.Some(now)
	s.audit(c, "REPLY_TICKET", "ticket", t.ID, "", map[string]any{"attachments": len(in.Attachments)})
	c.JSON(http.StatusOK, ok("Reply sent", gin.H{"ticket": t}))
}

func (s *server) ticketStatus(c *gin.Context) {
	var in struct {
		Status kameroapi.TicketStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || !slices.Contains(kameroapi.TicketStatuses, in.Status) {
		fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown ticket status")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, found := s.ticket(c)
	if !found {
		return
	}
	from := t.Status
	t.Status = in.Status
	t.UpdatedAt = opt.Some(s.now())
	s.audit(c, "UPDATE_TICKET_STATUS", "ticket", t.ID, "", map[string]any{"status": map[string]any{"from": from, "to": in.Status}})
	c.JSON(http.StatusOK, ok("Status updated", gin.H{"ticket": t}))
}

// audit logs and leads

func (s *server) listAudit(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.audit, func(e kameroapi.AuditLogEntry) bool {
		return (c.Query("entityType") == "" || e.EntityType == c.Query("entityType")) &&
			(c.Query("operationType") == "" || e.OperationType == c.Query("operationType")) &&
			(c.Query("actorId") == "" || e.ActorID == c.Query("actorId")) &&
			(c.Query("entityId") == "" || e.EntityID == c.Query("entityId"))
	})
	respondPage(c, rows, readPage(c, "skip", 50))
}

func (s *server) listLeads(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := filter(s.d.leads, func(l kameroapi.WebLead) bool {
		return (c.Query("source") == "" || l.Source.Or("") == c.Query("source")) &&
			contains(l.Name.Or("")+" "+l.Email.Or("")+" "+l.Phone.Or(""), c.Query("q"))
	})
	p := readPage(c, "offset", 30)
	p.cursor = true
	respondPage(c, rows, p)
}

// reports

func (s *server) series(kind kameroapi.ReportKind, period string) kameroapi.Analytics {
	points := map[string]int{"7d": 7, "30d": 30, "90d": 13, "12m": 12}[period]
	if points == 0 {
		points, period = 30, "30d"
	}
	a := kameroapi.Analytics{Kind: kind, Period: period}
	if kind == kameroapi.ReportRevenue {
		a.Currency = "INR"
	}
	for i := 0; i < points; i++ {
		v := float64((i*37+int(len(kind))*11)%50 + 10)
		if kind == kameroapi.ReportRevenue {
			v *= 1000
		}
		a.Series = append(a.Series, kameroapi.SeriesPoint{Label: strconv.Itoa(i + 1), Value: v})
		a.Total += v
	}
	change := 4.2
	a.Change = &change
	return a
}

func (s *server) analytics(c *gin.Context) {
	kind, known := kameroapi.ParseReportKind(c.Param("kind"))
	if !known {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Unknown report")
		return
	}
	c.JSON(http.StatusOK, s.series(kind, c.Query("period")))
}

func (s *server) downloadReport(c *gin.Context) {
	kind, known := kameroapi.ParseReportKind(c.Param("kind"))
	if !known {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Unknown report")
		return
	}
	a := s.series(kind, c.Query("period"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.csv"`, kind, a.Period))
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"label", "value"})
	for _, p := range a.Series {
		_ = w.Write([]string{p.Label, strconv.FormatFloat(p.Value, 'f', 2, 64)})
	}
	w.Flush()
}

// uploads

func (s *server) presign(c *gin.Context) {
	var in kameroapi.PresignUploadRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.FileName == "" || in.ContentType == "" {
		fail(c, http.StatusBadRequest, "BAD_REQUEST", "fileName and contentType are required")
		return
	}
	p, err := s.store.Presign(c.Request.Context(), storage.PresignInput{
		Filename:    in.FileName,
		ContentType: in.ContentType,
		Category:    in.UploadType,
		Expires:     15 * time.Minute,
	})
	if err != nil {
		s.logger.Error("presign_failed", slog.Any("err", err))
		fail(c, http.StatusBadGateway, "STORAGE", "Could not prepare the upload")
		return
	}
	c.JSON(http.StatusOK, kameroapi.PresignedUpload{UploadURL: p.UploadURL, FileURL: p.FileURL})
}

func (s *server) acceptUpload(c *gin.Context) {
	err := s.local.Accept(c.Request.Context(), c.Param("key"), c.Request.URL.Query(), c.GetHeader("Content-Type"), c.Request.Body)
	if errors.Is(err, storage.ErrBadSignature) {
		c.String(http.StatusForbidden, "signature mismatch")
		return
	}
	if err != nil {
		s.logger.Error("upload_store_failed", slog.Any("err", err))
		c.String(http.StatusInternalServerError, "store failed")
		return
	}
	c.Status(http.StatusOK)
}
